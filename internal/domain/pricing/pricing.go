// Package pricing composes fixed-cost add-ons onto a priced item.
//
// A decorated item is a linear chain: every Decorated value wraps exactly one
// inner Priced value and adds its surcharge and description fragment on top
// of it. Surcharges are flat amounts and never scale with quantity, so callers
// multiply the unit price by the quantity before building the base Item.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Priced is anything that has a price and a human-readable description.
type Priced interface {
	Price() decimal.Decimal
	Description() string
}

// Item is the undecorated base of every chain. Its fields are fixed at
// construction.
type Item struct {
	id          int64
	name        string
	price       decimal.Decimal
	description string
}

var _ Priced = Item{}

// NewItem returns a base item.
func NewItem(id int64, name string, price decimal.Decimal, description string) Item {
	return Item{id: id, name: name, price: price, description: description}
}

// ID returns the product identifier the item was built from.
func (i Item) ID() int64 { return i.id }

// Name returns the product name.
func (i Item) Name() string { return i.name }

// Price returns the base price.
func (i Item) Price() decimal.Decimal { return i.price }

// Description returns the base description.
func (i Item) Description() string { return i.description }

// Addon is the stored listing of a decoration kind offered to customers.
type Addon struct {
	ID   int64
	Name string
	Cost decimal.Decimal
}

// AddonRepository lists the add-ons offered in the storefront.
type AddonRepository interface {
	List(ctx context.Context) ([]Addon, error)
}
