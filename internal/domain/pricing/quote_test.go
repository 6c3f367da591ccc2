package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name        string
		req         QuoteRequest
		wantBase    decimal.Decimal
		wantExtras  decimal.Decimal
		wantFinal   decimal.Decimal
		wantDesc    string
		wantApplied int
		wantErr     error
	}{
		{
			name: "single unit without add-ons",
			req: QuoteRequest{
				ProductID: 1, Name: "Laptop", UnitPrice: d("899.99"), Quantity: 1,
				Description: "High-performance laptop",
			},
			wantBase:   d("899.99"),
			wantExtras: decimal.Zero,
			wantFinal:  d("899.99"),
			wantDesc:   "High-performance laptop",
		},
		{
			name: "surcharge does not scale with quantity",
			req: QuoteRequest{
				ProductID: 4, Name: "T-Shirt", UnitPrice: d("19.99"), Quantity: 3,
				Description: "Cotton t-shirt",
				Decorations: []string{"Gift Wrap", "Express Shipping"},
			},
			wantBase:    d("59.97"),
			wantExtras:  d("20.00"),
			wantFinal:   d("79.97"),
			wantDesc:    "Cotton t-shirt + Gift Wrap ($5.00) + Express Shipping ($15.00)",
			wantApplied: 2,
		},
		{
			name: "personalization text is carried",
			req: QuoteRequest{
				ProductID: 2, Name: "Watch", UnitPrice: d("199.99"), Quantity: 1,
				Description:         "Smart watch",
				Decorations:         []string{"Personalization"},
				PersonalizationText: "Happy birthday",
			},
			wantBase:    d("199.99"),
			wantExtras:  d("10.00"),
			wantFinal:   d("209.99"),
			wantDesc:    "Smart watch + Personalization: 'Happy birthday' ($10.00)",
			wantApplied: 1,
		},
		{
			name: "unknown add-on ignored",
			req: QuoteRequest{
				ProductID: 2, Name: "Watch", UnitPrice: d("10"), Quantity: 2,
				Description: "w",
				Decorations: []string{"Teleport"},
			},
			wantBase:   d("20"),
			wantExtras: decimal.Zero,
			wantFinal:  d("20"),
			wantDesc:   "w",
		},
		{
			name: "zero quantity rejected",
			req: QuoteRequest{
				ProductID: 1, Name: "Laptop", UnitPrice: d("1"), Quantity: 0,
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "quantity above the line limit rejected",
			req: QuoteRequest{
				ProductID: 1, Name: "Laptop", UnitPrice: d("1"), Quantity: MaxQuantity + 1,
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "quantity at the line limit accepted",
			req: QuoteRequest{
				ProductID: 1, Name: "Laptop", UnitPrice: d("0.50"), Quantity: MaxQuantity,
				Description: "l",
			},
			wantBase:   d("5000"),
			wantExtras: decimal.Zero,
			wantFinal:  d("5000"),
			wantDesc:   "l",
		},
		{
			name: "negative price rejected",
			req: QuoteRequest{
				ProductID: 1, Name: "Laptop", UnitPrice: d("-1"), Quantity: 1,
			},
			wantErr: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantBase.Equal(got.BaseTotal), "base: got %s", got.BaseTotal)
			assert.True(t, tt.wantExtras.Equal(got.DecorationsTotal), "extras: got %s", got.DecorationsTotal)
			assert.True(t, tt.wantFinal.Equal(got.FinalPrice), "final: got %s", got.FinalPrice)
			assert.Equal(t, tt.wantDesc, got.Description)
			assert.Len(t, got.Applied, tt.wantApplied)
		})
	}
}

func TestQuote_AvoidsFloatDrift(t *testing.T) {
	got, err := Quote(QuoteRequest{
		ProductID: 9, Name: "Pen", UnitPrice: d("0.10"), Quantity: 3,
		Decorations: []string{"Insurance"},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.30", got.BaseTotal.StringFixed(2))
	assert.Equal(t, "7.80", got.FinalPrice.StringFixed(2))
}
