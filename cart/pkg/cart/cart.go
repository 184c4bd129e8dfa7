package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant distinguishes two selections of the same product. Two lines with the
// same product id but different variants are distinct lines.
type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Line struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"productId"`
	Title        string          `json:"title"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ImageRef     string          `json:"imageRef,omitempty"`
	Quantity     int32           `json:"quantity"`
	Variant      Variant         `json:"variant"`
	Instructions string          `json:"instructions,omitempty"`
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// Cart is an immutable snapshot. SellerID is uuid.Nil exactly when Lines is
// empty, and Totals always reflect the current Lines.
type Cart struct {
	Lines    []Line    `json:"lines"`
	SellerID uuid.UUID `json:"sellerId"`
	Totals   Totals    `json:"totals"`
}

func Empty() Cart {
	zero := decimal.Zero
	return Cart{
		Lines:    nil,
		SellerID: uuid.Nil,
		Totals:   Totals{Subtotal: zero, DeliveryFee: zero, Tax: zero, Total: zero},
	}
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CloneLines returns a copy of the line slice so a mutated successor snapshot
// never aliases its predecessor.
func (c Cart) CloneLines() []Line {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}

// FindLine returns the index of the line matching (productId, variant), or -1.
func (c Cart) FindLine(productId uuid.UUID, variant Variant) int {
	for i, line := range c.Lines {
		if line.ProductID == productId && line.Variant == variant {
			return i
		}
	}
	return -1
}

// FindLineById returns the index of the line with the given line id, or -1.
func (c Cart) FindLineById(lineId uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ID == lineId {
			return i
		}
	}
	return -1
}
