// Package handler serves the storefront JSON API over net/http.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/domain/delivery"
	"github.com/xenking/storefront/internal/domain/order"
	"github.com/xenking/storefront/internal/domain/payment"
	"github.com/xenking/storefront/internal/domain/pricing"
	"github.com/xenking/storefront/internal/domain/product"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// DemoUserID is used when a request does not name a user.
	DemoUserID int64
}

// Deps are the domain collaborators of the Handler.
type Deps struct {
	Products   product.Repository
	Addons     pricing.AddonRepository
	Orders     *order.Service
	Bundles    *catalog.Manager
	Payments   *payment.Gateway
	Deliveries *delivery.Gateway
}

// Handler implements the storefront API routes.
type Handler struct {
	products   product.Repository
	addons     pricing.AddonRepository
	orders     *order.Service
	bundles    *catalog.Manager
	payments   *payment.Gateway
	deliveries *delivery.Gateway
	demoUserID int64

	quotes       metric.Int64Counter
	ordersPlaced metric.Int64Counter
	charges      metric.Int64Counter
}

// New constructs a Handler and registers its counters on meter.
func New(cfg Config, deps Deps, meter metric.Meter) (*Handler, error) {
	h := &Handler{
		products:   deps.Products,
		addons:     deps.Addons,
		orders:     deps.Orders,
		bundles:    deps.Bundles,
		payments:   deps.Payments,
		deliveries: deps.Deliveries,
		demoUserID: cfg.DemoUserID,
	}

	var err error
	if h.quotes, err = meter.Int64Counter("storefront.quotes",
		metric.WithDescription("Price quotes computed"),
	); err != nil {
		return nil, errors.Wrap(err, "quotes counter")
	}
	if h.ordersPlaced, err = meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders placed"),
	); err != nil {
		return nil, errors.Wrap(err, "orders counter")
	}
	if h.charges, err = meter.Int64Counter("storefront.payments",
		metric.WithDescription("Payments processed by provider and status"),
	); err != nil {
		return nil, errors.Wrap(err, "payments counter")
	}
	return h, nil
}

// Register mounts every API route on mux. Each path is served with and
// without a trailing slash.
func (h *Handler) Register(mux *http.ServeMux) {
	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/api/categories", h.ListCategories},
		{http.MethodGet, "/api/products", h.ListProducts},
		{http.MethodGet, "/api/decorators", h.ListDecorators},
		{http.MethodPost, "/api/calculate-price", h.CalculatePrice},
		{http.MethodGet, "/api/bundles", h.ListBundles},
		{http.MethodPost, "/api/orders", h.PlaceOrder},
		{http.MethodGet, "/api/user-orders", h.ListUserOrders},
		{http.MethodPost, "/api/payment/process", h.ProcessPayment},
		{http.MethodPost, "/api/delivery/schedule", h.ScheduleDelivery},
	}
	for _, rt := range routes {
		mux.Handle(rt.method+" "+rt.path, rt.handler)
		mux.Handle(rt.method+" "+rt.path+"/{$}", rt.handler)
	}
}
