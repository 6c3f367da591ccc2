package delivery

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// DHLRecipient is the consignee of a DHL shipment.
type DHLRecipient struct {
	Name    string
	Address string
}

// DHLPackage describes one parcel.
type DHLPackage struct {
	WeightKg   int
	Dimensions string
}

// DHLShipment is the response of the DHL API.
type DHLShipment struct {
	TrackingID        string
	Status            string
	EstimatedDelivery string
}

// DHLAPI is the DHL client.
type DHLAPI interface {
	CreateShipment(ctx context.Context, recipient DHLRecipient, packages []DHLPackage) (DHLShipment, error)
}

// DHLAdapter adapts DHLAPI to Scheduler.
type DHLAdapter struct {
	api DHLAPI
}

var _ Scheduler = (*DHLAdapter)(nil)

func NewDHLAdapter(api DHLAPI) *DHLAdapter {
	return &DHLAdapter{api: api}
}

// Schedule books every order as one standard parcel.
func (a *DHLAdapter) Schedule(ctx context.Context, req Request) (Result, error) {
	recipient := DHLRecipient{
		Name:    req.ShippingAddress.Name,
		Address: req.ShippingAddress.Address,
	}
	packages := []DHLPackage{{WeightKg: 1, Dimensions: "10x10x10"}}

	shipment, err := a.api.CreateShipment(ctx, recipient, packages)
	if err != nil {
		return Result{}, errors.Wrap(err, "create shipment")
	}

	return Result{
		TrackingID:        shipment.TrackingID,
		Status:            shipment.Status,
		EstimatedDelivery: shipment.EstimatedDelivery,
		Provider:          ProviderDHL,
	}, nil
}

// SimulatedDHL registers every shipment for delivery in five days.
type SimulatedDHL struct {
	Now func() time.Time
}

var _ DHLAPI = SimulatedDHL{}

func (s SimulatedDHL) CreateShipment(_ context.Context, _ DHLRecipient, _ []DHLPackage) (DHLShipment, error) {
	return DHLShipment{
		TrackingID:        "DHL" + trackingSuffix(),
		Status:            "registered",
		EstimatedDelivery: now(s.Now).AddDate(0, 0, 5).Format(time.DateOnly),
	}, nil
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
