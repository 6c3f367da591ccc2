package payment

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// StripeIntent is the response of the card processor to a payment intent.
type StripeIntent struct {
	ID             string
	Status         string
	AmountReceived int64
}

// StripeAPI is the card processor client. Amounts are in minor units.
type StripeAPI interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (StripeIntent, error)
}

// StripeAdapter adapts StripeAPI to Processor.
type StripeAdapter struct {
	api      StripeAPI
	currency string
}

var _ Processor = (*StripeAdapter)(nil)

// NewStripeAdapter creates an adapter charging in currency.
func NewStripeAdapter(api StripeAPI, currency string) *StripeAdapter {
	return &StripeAdapter{api: api, currency: currency}
}

// Process converts the amount to whole cents and creates a payment intent
// tagged with the order and user. Amounts that are not whole cents are
// rejected with ErrInvalidAmount before the API is called.
func (a *StripeAdapter) Process(ctx context.Context, req Request) (Result, error) {
	cents, err := toCents(req.Amount)
	if err != nil {
		return Result{}, err
	}
	intent, err := a.api.CreatePaymentIntent(ctx, cents, a.currency, map[string]string{
		"order_id": req.OrderID,
		"user_id":  strconv.FormatInt(req.UserID, 10),
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "create payment intent")
	}

	return Result{
		PaymentID: intent.ID,
		Status:    intent.Status,
		Amount:    req.Amount,
		Provider:  ProviderStripe,
	}, nil
}

// SimulatedStripe accepts every intent. It never touches the network.
type SimulatedStripe struct{}

var _ StripeAPI = SimulatedStripe{}

// CreatePaymentIntent returns a succeeded intent for the full amount.
func (SimulatedStripe) CreatePaymentIntent(_ context.Context, amountCents int64, _ string, _ map[string]string) (StripeIntent, error) {
	return StripeIntent{
		ID:             "pi_" + compactID(),
		Status:         "succeeded",
		AmountReceived: amountCents,
	}, nil
}

func compactID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
