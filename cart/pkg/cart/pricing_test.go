package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(unitPrice string, quantity int32) Line {
	return Line{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		UnitPrice: decimal.RequireFromString(unitPrice),
		Quantity:  quantity,
	}
}

func TestComputeTotals(t *testing.T) {
	cfg := DefaultPricingConfig()

	tests := []struct {
		name                string
		lines               []Line
		expectedSubtotal    string
		expectedDeliveryFee string
		expectedTax         string
		expectedTotal       string
	}{
		{
			name:                "given no lines should yield all zero totals",
			lines:               nil,
			expectedSubtotal:    "0",
			expectedDeliveryFee: "0",
			expectedTax:         "0",
			expectedTotal:       "0",
		},
		{
			name:                "given subtotal below reduced threshold should charge base fee",
			lines:               []Line{line("5", 2)},
			expectedSubtotal:    "10",
			expectedDeliveryFee: "4.99",
			expectedTax:         "0.85",
			expectedTotal:       "15.84",
		},
		{
			name:                "given subtotal at reduced threshold should charge reduced fee",
			lines:               []Line{line("10", 2)},
			expectedSubtotal:    "20",
			expectedDeliveryFee: "2.99",
			expectedTax:         "1.7",
			expectedTotal:       "24.69",
		},
		{
			name:                "given subtotal just below free threshold should charge reduced fee",
			lines:               []Line{line("49.99", 1)},
			expectedSubtotal:    "49.99",
			expectedDeliveryFee: "2.99",
			expectedTax:         "4.24915",
			expectedTotal:       "57.22915",
		},
		{
			name:                "given subtotal at free threshold should waive delivery fee",
			lines:               []Line{line("25", 2)},
			expectedSubtotal:    "50",
			expectedDeliveryFee: "0",
			expectedTax:         "4.25",
			expectedTotal:       "54.25",
		},
		{
			name:                "given multiple lines should sum quantity times unit price",
			lines:               []Line{line("12.50", 2), line("3.25", 4)},
			expectedSubtotal:    "38",
			expectedDeliveryFee: "2.99",
			expectedTax:         "3.23",
			expectedTotal:       "44.22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.lines, cfg)

			assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString(tt.expectedSubtotal)),
				"subtotal: expected %s got %s", tt.expectedSubtotal, totals.Subtotal)
			assert.True(t, totals.DeliveryFee.Equal(decimal.RequireFromString(tt.expectedDeliveryFee)),
				"deliveryFee: expected %s got %s", tt.expectedDeliveryFee, totals.DeliveryFee)
			assert.True(t, totals.Tax.Equal(decimal.RequireFromString(tt.expectedTax)),
				"tax: expected %s got %s", tt.expectedTax, totals.Tax)
			assert.True(t, totals.Total.Equal(decimal.RequireFromString(tt.expectedTotal)),
				"total: expected %s got %s", tt.expectedTotal, totals.Total)
		})
	}
}

func TestComputeTotalsConsistency(t *testing.T) {
	cfg := DefaultPricingConfig()
	lines := []Line{line("9.75", 3), line("2.40", 1)}

	totals := ComputeTotals(lines, cfg)

	expected := totals.Subtotal.Add(totals.DeliveryFee).Add(totals.Tax)
	assert.True(t, totals.Total.Equal(expected),
		"total must equal subtotal + deliveryFee + tax, expected %s got %s", expected, totals.Total)
}
