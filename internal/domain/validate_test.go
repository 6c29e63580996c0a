package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() Order {
	return Order{Symbol: "AAPL", Price: 187.5, Quantity: 10, Side: SideBuy}
}

func TestValidateOrder_Valid(t *testing.T) {
	assert.NoError(t, ValidateOrder(validOrder()))

	sell := validOrder()
	sell.Side = SideSell
	assert.NoError(t, ValidateOrder(sell))
}

func TestValidateOrder_SingleCharSymbol(t *testing.T) {
	o := validOrder()
	o.Symbol = "F"
	assert.NoError(t, ValidateOrder(o))
}

func TestValidateOrder_MaxLengthSymbol(t *testing.T) {
	o := validOrder()
	o.Symbol = "GOOGL"
	assert.NoError(t, ValidateOrder(o))
}

func TestValidateOrder_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Order)
		wantReason string
	}{
		{"empty symbol", func(o *Order) { o.Symbol = "" }, "symbol must not be empty"},
		{"too long symbol", func(o *Order) { o.Symbol = "TOOLONG" }, "symbol must be at most 5 characters"},
		{"lowercase symbol", func(o *Order) { o.Symbol = "aapl" }, "symbol must contain only uppercase letters"},
		{"mixed case symbol", func(o *Order) { o.Symbol = "AaPL" }, "symbol must contain only uppercase letters"},
		{"digit in symbol", func(o *Order) { o.Symbol = "AAP1" }, "symbol must contain only uppercase letters"},
		{"zero price", func(o *Order) { o.Price = 0 }, "price must be positive"},
		{"negative price", func(o *Order) { o.Price = -1.5 }, "price must be positive"},
		{"zero quantity", func(o *Order) { o.Quantity = 0 }, "quantity must be positive"},
		{"negative quantity", func(o *Order) { o.Quantity = -3 }, "quantity must be positive"},
		{"unknown side", func(o *Order) { o.Side = "hold" }, `order_type must be "buy" or "sell"`},
		{"empty side", func(o *Order) { o.Side = "" }, `order_type must be "buy" or "sell"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)

			err := ValidateOrder(o)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Reasons, tt.wantReason)
		})
	}
}

func TestValidateOrder_CollectsAllReasons(t *testing.T) {
	err := ValidateOrder(Order{Symbol: "", Price: 0, Quantity: 0, Side: "hold"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Reasons, 4)
	assert.Contains(t, err.Error(), "invalid order:")
}
