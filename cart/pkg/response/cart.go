package response

import (
	"github.com/google/uuid"

	"github.com/foodie-app/foodie/cart/pkg/cart"
)

type Line struct {
	ID           uuid.UUID `json:"id"`
	ProductId    uuid.UUID `json:"productId"`
	Title        string    `json:"title"`
	UnitPrice    string    `json:"unitPrice"`
	ImageRef     string    `json:"imageRef,omitempty"`
	Quantity     int32     `json:"quantity"`
	Size         string    `json:"size,omitempty"`
	Color        string    `json:"color,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
}

// Cart is the presentation snapshot. Money values are rounded to two decimal
// places here and only here.
type Cart struct {
	Lines       []Line `json:"lines"`
	SellerId    string `json:"sellerId,omitempty"`
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

func NewCart(snapshot cart.Cart) Cart {
	lines := make([]Line, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, Line{
			ID:           line.ID,
			ProductId:    line.ProductID,
			Title:        line.Title,
			UnitPrice:    line.UnitPrice.StringFixed(2),
			ImageRef:     line.ImageRef,
			Quantity:     line.Quantity,
			Size:         line.Variant.Size,
			Color:        line.Variant.Color,
			Instructions: line.Instructions,
		})
	}
	sellerId := ""
	if snapshot.SellerID != uuid.Nil {
		sellerId = snapshot.SellerID.String()
	}
	return Cart{
		Lines:       lines,
		SellerId:    sellerId,
		Subtotal:    snapshot.Totals.Subtotal.StringFixed(2),
		DeliveryFee: snapshot.Totals.DeliveryFee.StringFixed(2),
		Tax:         snapshot.Totals.Tax.StringFixed(2),
		Total:       snapshot.Totals.Total.StringFixed(2),
	}
}
