package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItem struct {
	ProductId    uuid.UUID `json:"productId"    validate:"required"`
	Quantity     int32     `json:"quantity"     validate:"required,min=1"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Instructions string    `json:"instructions"`
	// Confirmed acknowledges that adding from a different seller clears the
	// current cart first.
	Confirmed bool `json:"confirmed"`
}

type SetQuantity struct {
	// Zero or negative removes the line.
	Quantity int32 `json:"quantity"`
}

type SetInstructions struct {
	Instructions string `json:"instructions"`
}

type Checkout struct {
	DeliveryAddress string          `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod"   validate:"required"`
	Tip             decimal.Decimal `json:"tip"`
	Instructions    string          `json:"instructions"`
}
