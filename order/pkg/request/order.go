package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ProductId    uuid.UUID       `json:"productId"    validate:"required"`
	Title        string          `json:"title"        validate:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int32           `json:"quantity"     validate:"required,min=1"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	Instructions string          `json:"instructions"`
}

type Checkout struct {
	SellerId        uuid.UUID       `json:"sellerId"        validate:"required"`
	Lines           []OrderLine     `json:"lines"           validate:"required,min=1,dive"`
	DeliveryAddress string          `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod"   validate:"required"`
	Tip             decimal.Decimal `json:"tip"`
	Instructions    string          `json:"instructions"`
}
