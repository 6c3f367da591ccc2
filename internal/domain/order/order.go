package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed customer order with its priced lines and add-ons.
type Order struct {
	ID                  string
	UserID              int64
	Items               []Item
	Decorations         []string
	PersonalizationText string
	ItemsAmount         decimal.Decimal
	DecorationsAmount   decimal.Decimal
	Total               decimal.Decimal
	Description         string
	CreatedAt           time.Time
}

// Item is a single line of an order. UnitPrice is the product price at the
// time the order was placed.
type Item struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns UnitPrice × Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Status is the fulfilment stage shown in the order history.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipping   Status = "shipping"
	StatusDelivered  Status = "delivered"
)

// StatusAt derives the status of an order created at createdAt as seen at
// now. Orders older than seven days are delivered, older than two days are
// shipping, the rest are processing.
func StatusAt(createdAt, now time.Time) Status {
	age := now.Sub(createdAt)
	switch {
	case age > 7*24*time.Hour:
		return StatusDelivered
	case age > 2*24*time.Hour:
		return StatusShipping
	default:
		return StatusProcessing
	}
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create stores the order with its lines and decorations atomically and
	// fills CreatedAt.
	Create(ctx context.Context, order *Order) error
	// ListByUser returns the orders of a user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
}
