package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	orderResponse "github.com/foodie-app/foodie/order/pkg/response"
	productResponse "github.com/foodie-app/foodie/product/pkg/response"
	userResponse "github.com/foodie-app/foodie/user/pkg/response"
)

func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		NaN:              false,
		Valid:            true,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		SellerId:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       NumericToDecimal(p.Price),
		ImageRef:    p.ImageRef,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (s Seller) Response() productResponse.Restaurant {
	return productResponse.Restaurant{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		ImageRef:    s.ImageRef,
		CreatedAt:   s.CreatedAt.Time,
		UpdatedAt:   s.UpdatedAt.Time,
	}
}

func (a Address) Response() userResponse.Address {
	return userResponse.Address{
		ID:         a.ID,
		Label:      a.Label,
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt.Time,
		UpdatedAt:  a.UpdatedAt.Time,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}

func (o Order) Response(lines []OrderLine) orderResponse.Order {
	orderLines := make([]orderResponse.OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, orderResponse.OrderLine{
			ID:           l.ID,
			ProductId:    l.ProductID,
			Title:        l.Title,
			UnitPrice:    NumericToDecimal(l.UnitPrice).StringFixed(2),
			Quantity:     l.Quantity,
			Size:         l.Size,
			Color:        l.Color,
			Instructions: l.Instructions,
		})
	}
	return orderResponse.Order{
		ID:              o.ID,
		UserId:          o.UserID,
		SellerId:        o.SellerID,
		Status:          string(o.Status),
		Lines:           orderLines,
		Subtotal:        NumericToDecimal(o.Subtotal).StringFixed(2),
		DeliveryFee:     NumericToDecimal(o.DeliveryFee).StringFixed(2),
		Tax:             NumericToDecimal(o.Tax).StringFixed(2),
		Tip:             NumericToDecimal(o.Tip).StringFixed(2),
		Total:           NumericToDecimal(o.Total).StringFixed(2),
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		Instructions:    o.Instructions,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
	}
}
