package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericDecimalRoundTrip(t *testing.T) {
	price := decimal.RequireFromString("12.49")

	numeric := DecimalToNumeric(price)
	require.True(t, numeric.Valid)

	back := NumericToDecimal(numeric)
	assert.True(t, price.Equal(back))
}

func TestNumericToDecimalInvalidIsZero(t *testing.T) {
	assert.True(t, NumericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestSellerResponse(t *testing.T) {
	now := time.Now()
	seller := Seller{
		ID:          uuid.New(),
		Name:        "Thai Garden",
		Description: "Family-run Thai kitchen",
		ImageRef:    "sellers/thai-garden.jpg",
		CreatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
	}

	resp := seller.Response()

	assert.Equal(t, seller.ID, resp.ID)
	assert.Equal(t, seller.Name, resp.Name)
	assert.Equal(t, seller.Description, resp.Description)
	assert.Equal(t, seller.ImageRef, resp.ImageRef)
	assert.Equal(t, now, resp.CreatedAt)
	assert.Equal(t, now, resp.UpdatedAt)
}

func TestAddressResponse(t *testing.T) {
	now := time.Now()
	address := Address{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Label:      "Home",
		Street:     "12 Elm Street",
		City:       "Springfield",
		PostalCode: "62704",
		IsDefault:  true,
		CreatedAt:  pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: now, Valid: true},
	}

	resp := address.Response()

	assert.Equal(t, address.ID, resp.ID)
	assert.Equal(t, address.Label, resp.Label)
	assert.Equal(t, address.Street, resp.Street)
	assert.Equal(t, address.City, resp.City)
	assert.Equal(t, address.PostalCode, resp.PostalCode)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, now, resp.CreatedAt)
}
