package delivery

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// FedExShipDetails is the routing part of a FedEx delivery request.
type FedExShipDetails struct {
	Recipient   string
	Destination string
}

// FedExCommodity describes the shipped goods.
type FedExCommodity struct {
	Description string
}

// FedExDelivery is the response of the FedEx API.
type FedExDelivery struct {
	TrackingNumber  string
	ServiceType     string
	CommitTimestamp time.Time
}

// FedExAPI is the FedEx client.
type FedExAPI interface {
	RequestDelivery(ctx context.Context, details FedExShipDetails, commodities []FedExCommodity) (FedExDelivery, error)
}

// FedExAdapter adapts FedExAPI to Scheduler. FedEx does not report a status,
// so accepted requests are reported as scheduled.
type FedExAdapter struct {
	api FedExAPI
}

var _ Scheduler = (*FedExAdapter)(nil)

func NewFedExAdapter(api FedExAPI) *FedExAdapter {
	return &FedExAdapter{api: api}
}

func (a *FedExAdapter) Schedule(ctx context.Context, req Request) (Result, error) {
	details := FedExShipDetails{
		Recipient:   req.ShippingAddress.Name,
		Destination: req.ShippingAddress.Address,
	}
	commodities := []FedExCommodity{{Description: "E-commerce order"}}

	delivery, err := a.api.RequestDelivery(ctx, details, commodities)
	if err != nil {
		return Result{}, errors.Wrap(err, "request delivery")
	}

	return Result{
		TrackingID:        delivery.TrackingNumber,
		Status:            "scheduled",
		EstimatedDelivery: delivery.CommitTimestamp.UTC().Format(time.RFC3339),
		Provider:          ProviderFedEx,
	}, nil
}

// SimulatedFedEx commits every delivery for noon six days from now.
type SimulatedFedEx struct {
	Now func() time.Time
}

var _ FedExAPI = SimulatedFedEx{}

func (s SimulatedFedEx) RequestDelivery(_ context.Context, _ FedExShipDetails, _ []FedExCommodity) (FedExDelivery, error) {
	day := now(s.Now).AddDate(0, 0, 6)
	return FedExDelivery{
		TrackingNumber:  "FX" + trackingSuffix(),
		ServiceType:     "STANDARD",
		CommitTimestamp: time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC),
	}, nil
}
