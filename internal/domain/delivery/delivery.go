// Package delivery books shipments with external carriers through adapters
// that translate each carrier API to Scheduler.
package delivery

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrUnsupportedProvider is returned for a carrier with no registered scheduler.
var ErrUnsupportedProvider = errors.New("unsupported delivery provider")

// Provider names a carrier.
type Provider string

const (
	ProviderDHL   Provider = "dhl"
	ProviderFedEx Provider = "fedex"
)

// Address is the shipping destination.
type Address struct {
	Name    string
	Address string
}

// Request is a shipment for an order.
type Request struct {
	OrderID         string
	ShippingAddress Address
}

// Result is the carrier-neutral outcome of a booking.
type Result struct {
	TrackingID        string
	Status            string
	EstimatedDelivery string
	Provider          Provider
}

// Scheduler books a single shipment.
type Scheduler interface {
	Schedule(ctx context.Context, req Request) (Result, error)
}

// Gateway routes bookings to the scheduler registered for a carrier.
type Gateway struct {
	schedulers map[Provider]Scheduler
}

func NewGateway() *Gateway {
	return &Gateway{schedulers: make(map[Provider]Scheduler)}
}

// Register installs s for provider, replacing any previous scheduler.
func (g *Gateway) Register(provider Provider, s Scheduler) *Gateway {
	g.schedulers[provider] = s
	return g
}

// Schedule books req with provider.
func (g *Gateway) Schedule(ctx context.Context, provider Provider, req Request) (Result, error) {
	s, ok := g.schedulers[provider]
	if !ok {
		return Result{}, errors.Wrapf(ErrUnsupportedProvider, "provider %q", provider)
	}

	res, err := s.Schedule(ctx, req)
	if err != nil {
		return Result{}, errors.Wrapf(err, "schedule %s delivery", provider)
	}
	return res, nil
}

func trackingSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
