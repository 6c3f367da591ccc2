package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/pricing"
	"github.com/xenking/storefront/internal/domain/product"
)

// maxAmount is the largest order amount the order store can hold.
var maxAmount = decimal.RequireFromString("9999999999.99")

// Sentinel errors for order placement.
var (
	ErrEmptyItems     = errors.New("items required")
	ErrAmountTooLarge = errors.Errorf("order total exceeds %s", maxAmount.StringFixed(2))
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidQuantityError indicates a line item quantity outside 1..pricing.MaxQuantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be between 1 and %d for product %d", pricing.MaxQuantity, e.ProductID)
}

// LineRequest is one requested order line.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	UserID              int64
	Items               []LineRequest
	Decorations         []string
	PersonalizationText string
}

// View is an order as shown in the order history.
type View struct {
	Order
	Status Status
}

// Service encapsulates order placement business logic.
type Service struct {
	products product.Repository
	orders   Repository
	now      func() time.Time
}

// NewService creates an order Service with the required domain dependencies.
func NewService(products product.Repository, orders Repository) *Service {
	return &Service{
		products: products,
		orders:   orders,
		now:      time.Now,
	}
}

// PlaceOrder validates items, fetches products in a single batch, prices the
// lines, applies the requested add-ons over the items total, persists the
// order and returns it.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]int64, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 || item.Quantity > pricing.MaxQuantity {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
		ids[i] = item.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	productMap := make(map[int64]product.Product, len(fetched))
	for _, p := range fetched {
		productMap[p.ID] = p
	}

	items := make([]Item, 0, len(req.Items))
	itemsAmount := decimal.Zero
	for _, line := range req.Items {
		p, ok := productMap[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		item := Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		}
		itemsAmount = itemsAmount.Add(item.Subtotal())
		items = append(items, item)
	}
	itemsAmount = itemsAmount.Round(2)

	base := pricing.NewItem(0, "Order", itemsAmount, "Items: $"+itemsAmount.StringFixed(2))
	decorated := pricing.Apply(base, uniqueKnown(req.Decorations), pricing.Options{
		PersonalizationText: req.PersonalizationText,
	})

	applied := decorated.Decorations()
	names := make([]string, len(applied))
	for i, dec := range applied {
		names[i] = dec.Kind.String()
	}

	if decorated.Price().GreaterThan(maxAmount) {
		return nil, ErrAmountTooLarge
	}

	o := &Order{
		ID:                  uuid.New().String(),
		UserID:              req.UserID,
		Items:               items,
		Decorations:         names,
		PersonalizationText: req.PersonalizationText,
		ItemsAmount:         itemsAmount,
		DecorationsAmount:   decorated.Surcharges(),
		Total:               decorated.Price(),
		Description:         decorated.Description(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return o, nil
}

// ListByUser returns the order history of a user, newest first, with the
// status of every order derived from its age.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]View, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	now := s.now()
	views := make([]View, len(orders))
	for i, o := range orders {
		views[i] = View{Order: o, Status: StatusAt(o.CreatedAt, now)}
	}
	return views, nil
}

// uniqueKnown keeps the first occurrence of every registered decoration
// name. An order carries each add-on at most once.
func uniqueKnown(names []string) []string {
	seen := make(map[pricing.Kind]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		kind, ok := pricing.ParseKind(name)
		if !ok {
			continue
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		out = append(out, name)
	}
	return out
}
