package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockStripe struct {
	cents    int64
	currency string
	metadata map[string]string
	status   string
	err      error
}

func (m *mockStripe) CreatePaymentIntent(_ context.Context, amountCents int64, currency string, metadata map[string]string) (StripeIntent, error) {
	m.cents = amountCents
	m.currency = currency
	m.metadata = metadata
	if m.err != nil {
		return StripeIntent{}, m.err
	}
	return StripeIntent{ID: "pi_test", Status: m.status, AmountReceived: amountCents}, nil
}

type mockPayPal struct {
	items []PayPalItem
	state string
	err   error
}

func (m *mockPayPal) MakePayment(_ context.Context, total decimal.Decimal, items []PayPalItem) (PayPalPayment, error) {
	m.items = items
	if m.err != nil {
		return PayPalPayment{}, m.err
	}
	return PayPalPayment{TransactionID: "PAY-test", State: m.state, Total: total}, nil
}

// --- Tests ---

func TestStripeAdapter_Process(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		wantCents int64
	}{
		{"whole amount", "100", 10000},
		{"two decimals", "1012.49", 101249},
		{"trailing zeros", "10.500", 1050},
		{"one cent", "0.01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockStripe{status: "succeeded"}
			adapter := NewStripeAdapter(api, "usd")

			res, err := adapter.Process(context.Background(), Request{
				OrderID: "ord-1",
				UserID:  3,
				Amount:  decimal.RequireFromString(tt.amount),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantCents, api.cents)
			assert.Equal(t, "usd", api.currency)
			assert.Equal(t, map[string]string{"order_id": "ord-1", "user_id": "3"}, api.metadata)
			assert.Equal(t, "pi_test", res.PaymentID)
			assert.Equal(t, "succeeded", res.Status)
			assert.Equal(t, ProviderStripe, res.Provider)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(res.Amount))
		})
	}
}

func TestStripeAdapter_APIError(t *testing.T) {
	adapter := NewStripeAdapter(&mockStripe{err: errors.New("card declined")}, "usd")

	_, err := adapter.Process(context.Background(), Request{Amount: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}

func TestStripeAdapter_RejectsInexactAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"fraction of a cent", "10.999"},
		{"below one cent", "0.004"},
		{"cents overflow int64", "1e17"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockStripe{status: "succeeded"}

			_, err := NewStripeAdapter(api, "usd").Process(context.Background(), Request{
				OrderID: "ord-1",
				Amount:  decimal.RequireFromString(tt.amount),
			})
			require.ErrorIs(t, err, ErrInvalidAmount)
			assert.Zero(t, api.cents)
		})
	}
}

func TestPayPalAdapter_Process(t *testing.T) {
	tests := []struct {
		state      string
		wantStatus string
	}{
		{"completed", "completed"},
		{"pending", "failed"},
		{"", "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus+"/"+tt.state, func(t *testing.T) {
			api := &mockPayPal{state: tt.state}
			adapter := NewPayPalAdapter(api)

			res, err := adapter.Process(context.Background(), Request{
				OrderID: "ord-9",
				Amount:  decimal.RequireFromString("49.99"),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, ProviderPayPal, res.Provider)
			require.Len(t, api.items, 1)
			assert.Equal(t, "Order ord-9", api.items[0].Name)
			assert.Equal(t, 1, api.items[0].Quantity)
			assert.True(t, decimal.RequireFromString("49.99").Equal(api.items[0].Price))
		})
	}
}

func TestSimulatedProviders(t *testing.T) {
	ctx := context.Background()
	req := Request{OrderID: "o", UserID: 1, Amount: decimal.RequireFromString("12.34")}

	stripe, err := NewStripeAdapter(SimulatedStripe{}, "usd").Process(ctx, req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stripe.PaymentID, "pi_"))
	assert.Equal(t, "succeeded", stripe.Status)

	paypal, err := NewPayPalAdapter(SimulatedPayPal{}).Process(ctx, req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(paypal.PaymentID, "PAY-"))
	assert.Equal(t, "completed", paypal.Status)

	again, err := NewPayPalAdapter(SimulatedPayPal{}).Process(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, paypal.PaymentID, again.PaymentID)
}

func TestGateway_Process(t *testing.T) {
	gw := NewGateway().
		Register(ProviderStripe, NewStripeAdapter(&mockStripe{status: "succeeded"}, "usd")).
		Register(ProviderPayPal, NewPayPalAdapter(&mockPayPal{state: "completed"}))

	t.Run("routes by provider", func(t *testing.T) {
		res, err := gw.Process(context.Background(), ProviderPayPal, Request{Amount: decimal.NewFromInt(5)})
		require.NoError(t, err)
		assert.Equal(t, ProviderPayPal, res.Provider)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := gw.Process(context.Background(), Provider("bitcoin"), Request{Amount: decimal.NewFromInt(5)})
		require.ErrorIs(t, err, ErrUnsupportedProvider)
		assert.False(t, gw.Supports("bitcoin"))
		assert.True(t, gw.Supports(ProviderStripe))
	})

	t.Run("invalid amounts", func(t *testing.T) {
		for _, amount := range []string{"0", "-1", "0.004", "10.999", "1e17", "92233720368547758.08"} {
			api := &mockStripe{status: "succeeded"}
			strict := NewGateway().Register(ProviderStripe, NewStripeAdapter(api, "usd"))

			_, err := strict.Process(context.Background(), ProviderStripe, Request{Amount: decimal.RequireFromString(amount)})
			require.ErrorIs(t, err, ErrInvalidAmount, amount)
			assert.Zero(t, api.cents, amount)
		}
	})

	t.Run("largest amount that fits in cents", func(t *testing.T) {
		api := &mockStripe{status: "succeeded"}
		strict := NewGateway().Register(ProviderStripe, NewStripeAdapter(api, "usd"))

		_, err := strict.Process(context.Background(), ProviderStripe, Request{Amount: decimal.RequireFromString("92233720368547758.07")})
		require.NoError(t, err)
		assert.Equal(t, int64(9223372036854775807), api.cents)
	})

	t.Run("provider failure is wrapped", func(t *testing.T) {
		failing := NewGateway().Register(ProviderStripe, NewStripeAdapter(&mockStripe{err: errors.New("boom")}, "usd"))
		_, err := failing.Process(context.Background(), ProviderStripe, Request{Amount: decimal.NewFromInt(5)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "process stripe payment")
	})
}
