package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// UnknownCategory is reported for products that reference no category.
const UnknownCategory = "Unknown"

// Category groups products in the catalog.
type Category struct {
	ID   int64
	Name string
}

// Product represents a catalog item available for purchase.
type Product struct {
	ID           int64
	CategoryID   int64
	CategoryName string
	Name         string
	Price        decimal.Decimal
	Description  string
}

// Filter narrows a product listing. Zero values disable the corresponding
// condition.
type Filter struct {
	CategoryID int64
	// Search matches a case-insensitive substring of the product name.
	Search string
	Limit  int
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
