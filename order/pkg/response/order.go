package response

import (
	"time"

	"github.com/google/uuid"
)

type OrderLine struct {
	ID           uuid.UUID `json:"id"`
	ProductId    uuid.UUID `json:"productId"`
	Title        string    `json:"title"`
	UnitPrice    string    `json:"unitPrice"`
	Quantity     int32     `json:"quantity"`
	Size         string    `json:"size,omitempty"`
	Color        string    `json:"color,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserId          uuid.UUID   `json:"userId"`
	SellerId        uuid.UUID   `json:"sellerId"`
	Status          string      `json:"status"`
	Lines           []OrderLine `json:"lines"`
	Subtotal        string      `json:"subtotal"`
	DeliveryFee     string      `json:"deliveryFee"`
	Tax             string      `json:"tax"`
	Tip             string      `json:"tip"`
	Total           string      `json:"total"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Instructions    string      `json:"instructions,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type TrackOrder struct {
	Status                string    `json:"status"`
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
}
