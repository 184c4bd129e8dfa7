package cart

import "github.com/shopspring/decimal"

// PricingConfig holds the delivery fee tiers and tax rate. The break points
// come from deployment configuration; DefaultPricingConfig carries the values
// the mobile clients ship with.
type PricingConfig struct {
	FreeThreshold    decimal.Decimal
	ReducedThreshold decimal.Decimal
	BaseFee          decimal.Decimal
	ReducedFee       decimal.Decimal
	TaxRate          decimal.Decimal
}

func NewPricingConfig(
	freeThreshold, reducedThreshold, baseFee, reducedFee, taxRate float64,
) PricingConfig {
	return PricingConfig{
		FreeThreshold:    decimal.NewFromFloat(freeThreshold),
		ReducedThreshold: decimal.NewFromFloat(reducedThreshold),
		BaseFee:          decimal.NewFromFloat(baseFee),
		ReducedFee:       decimal.NewFromFloat(reducedFee),
		TaxRate:          decimal.NewFromFloat(taxRate),
	}
}

func DefaultPricingConfig() PricingConfig {
	return NewPricingConfig(50, 20, 4.99, 2.99, 0.085)
}

// ComputeTotals derives subtotal, delivery fee, tax and total from the lines.
// It assumes sanitized input: quantity >= 1 and non-negative unit prices are
// enforced at the line construction boundary. No intermediate rounding; values
// are rounded to two decimal places only at presentation.
//
// Tip is never part of these totals. It is applied at the checkout boundary on
// top of Total and never persisted into the cart aggregate.
func ComputeTotals(lines []Line, cfg PricingConfig) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
	}

	deliveryFee := decimal.Zero
	switch {
	case subtotal.IsZero():
	case subtotal.GreaterThanOrEqual(cfg.FreeThreshold):
	case subtotal.GreaterThanOrEqual(cfg.ReducedThreshold):
		deliveryFee = cfg.ReducedFee
	default:
		deliveryFee = cfg.BaseFee
	}

	tax := subtotal.Mul(cfg.TaxRate)

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Total:       subtotal.Add(deliveryFee).Add(tax),
	}
}
