// Package payment charges orders through external payment providers. Each
// provider speaks its own API; adapters translate it to Processor.
package payment

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for payment processing.
var (
	ErrUnsupportedProvider = errors.New("unsupported payment provider")
	ErrInvalidAmount       = errors.New("amount must be a positive value with at most two decimal places")
)

// Provider names a payment provider.
type Provider string

const (
	ProviderStripe Provider = "stripe"
	ProviderPayPal Provider = "paypal"
)

// Request is a charge for an order.
type Request struct {
	OrderID string
	UserID  int64
	Amount  decimal.Decimal
}

// Result is the provider-neutral outcome of a charge.
type Result struct {
	PaymentID string
	Status    string
	Amount    decimal.Decimal
	Provider  Provider
}

// Processor charges a single request.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// Gateway routes charges to the processor registered for a provider.
type Gateway struct {
	processors map[Provider]Processor
}

// NewGateway creates an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{processors: make(map[Provider]Processor)}
}

// Register installs p as the processor for provider, replacing any previous one.
func (g *Gateway) Register(provider Provider, p Processor) *Gateway {
	g.processors[provider] = p
	return g
}

// Supports reports whether a processor is registered for provider.
func (g *Gateway) Supports(provider Provider) bool {
	_, ok := g.processors[provider]
	return ok
}

// Process validates req and charges it through provider.
func (g *Gateway) Process(ctx context.Context, provider Provider, req Request) (Result, error) {
	p, ok := g.processors[provider]
	if !ok {
		return Result{}, errors.Wrapf(ErrUnsupportedProvider, "provider %q", provider)
	}
	if _, err := toCents(req.Amount); err != nil {
		return Result{}, err
	}

	res, err := p.Process(ctx, req)
	if err != nil {
		return Result{}, errors.Wrapf(err, "process %s payment", provider)
	}
	return res, nil
}

// toCents converts a positive amount with at most two decimal places to
// whole minor units. Anything else, including amounts whose cent value does
// not fit in int64, is ErrInvalidAmount.
func toCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(2)) {
		return 0, ErrInvalidAmount
	}
	cents := amount.Shift(2).BigInt()
	if !cents.IsInt64() {
		return 0, ErrInvalidAmount
	}
	return cents.Int64(), nil
}
