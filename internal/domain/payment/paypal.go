package payment

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// PayPalItem is a line of a PayPal transaction.
type PayPalItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// PayPalPayment is the response of the wallet provider to a payment.
type PayPalPayment struct {
	TransactionID string
	State         string
	Total         decimal.Decimal
}

// PayPalAPI is the wallet provider client.
type PayPalAPI interface {
	MakePayment(ctx context.Context, total decimal.Decimal, items []PayPalItem) (PayPalPayment, error)
}

// PayPalAdapter adapts PayPalAPI to Processor.
type PayPalAdapter struct {
	api PayPalAPI
}

var _ Processor = (*PayPalAdapter)(nil)

// NewPayPalAdapter creates a PayPal adapter.
func NewPayPalAdapter(api PayPalAPI) *PayPalAdapter {
	return &PayPalAdapter{api: api}
}

// Process charges the order as a single line item. Any state other than
// completed is reported as failed.
func (a *PayPalAdapter) Process(ctx context.Context, req Request) (Result, error) {
	items := []PayPalItem{{
		Name:     "Order " + req.OrderID,
		Price:    req.Amount,
		Quantity: 1,
	}}

	payment, err := a.api.MakePayment(ctx, req.Amount, items)
	if err != nil {
		return Result{}, errors.Wrap(err, "make payment")
	}

	status := "failed"
	if payment.State == "completed" {
		status = "completed"
	}
	return Result{
		PaymentID: payment.TransactionID,
		Status:    status,
		Amount:    req.Amount,
		Provider:  ProviderPayPal,
	}, nil
}

// SimulatedPayPal completes every payment. It never touches the network.
type SimulatedPayPal struct{}

var _ PayPalAPI = SimulatedPayPal{}

// MakePayment returns a completed payment for total.
func (SimulatedPayPal) MakePayment(_ context.Context, total decimal.Decimal, _ []PayPalItem) (PayPalPayment, error) {
	return PayPalPayment{
		TransactionID: "PAY-" + compactID(),
		State:         "completed",
		Total:         total,
	}, nil
}
