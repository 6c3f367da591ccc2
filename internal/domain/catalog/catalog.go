// Package catalog models catalog entries as a composition tree: a leaf is a
// single priced product, a bundle groups leaves and other bundles and costs
// the sum of its children.
package catalog

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrChildNotFound is returned by Bundle.Remove when no child matches.
var ErrChildNotFound = errors.New("child not found in bundle")

// Node is a catalog entry. It is implemented only by *Leaf and *Bundle.
type Node interface {
	Price() decimal.Decimal
	Description() string
	// Display renders the node as text indented by indent levels of two
	// spaces.
	Display(indent int) string

	isNode()
}

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Bundle)(nil)
)

// Leaf is a single product inside the catalog tree. It is immutable.
type Leaf struct {
	id          int64
	name        string
	price       decimal.Decimal
	description string
}

// NewLeaf creates a leaf node.
func NewLeaf(id int64, name string, price decimal.Decimal, description string) *Leaf {
	return &Leaf{id: id, name: name, price: price, description: description}
}

// ID returns the product identifier.
func (l *Leaf) ID() int64 { return l.id }

// Name returns the product name.
func (l *Leaf) Name() string { return l.name }

// Price returns the product price.
func (l *Leaf) Price() decimal.Decimal { return l.price }

// Description returns the product description.
func (l *Leaf) Description() string { return l.description }

func (l *Leaf) isNode() {}

// Display renders "Product: <name> - $<price>".
func (l *Leaf) Display(indent int) string {
	return fmt.Sprintf("%sProduct: %s - $%s", pad(indent), l.name, l.price.StringFixed(2))
}

// Bundle is a named group of nodes. Children are kept in insertion order.
//
// A Bundle is not safe for concurrent mutation. Cycles are not detected;
// adding a bundle to one of its own descendants makes Price and Display
// recurse forever.
type Bundle struct {
	name        string
	description string
	children    []Node
}

// NewBundle creates an empty bundle.
func NewBundle(name, description string) *Bundle {
	return &Bundle{name: name, description: description}
}

// Name returns the bundle name.
func (b *Bundle) Name() string { return b.name }

// Description returns the bundle description.
func (b *Bundle) Description() string { return b.description }

func (b *Bundle) isNode() {}

// Add appends child to the bundle.
func (b *Bundle) Add(child Node) {
	b.children = append(b.children, child)
}

// Remove drops the first child structurally equal to child.
func (b *Bundle) Remove(child Node) error {
	for i, c := range b.children {
		if equal(c, child) {
			b.children = append(b.children[:i:i], b.children[i+1:]...)
			return nil
		}
	}
	return ErrChildNotFound
}

// Children returns a copy of the child list.
func (b *Bundle) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// Price returns the sum of the children prices, recomputed on every call.
func (b *Bundle) Price() decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.children {
		total = total.Add(c.Price())
	}
	return total
}

// Display renders the bundle header followed by every child one level
// deeper, each on its own line.
func (b *Bundle) Display(indent int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%sBundle: %s (Total: $%s)\n", pad(indent), b.name, b.Price().StringFixed(2))
	for _, c := range b.children {
		sb.WriteString(c.Display(indent + 1))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FlatProduct is a direct leaf of a bundle reduced to its line-item fields.
type FlatProduct struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// FlatProducts lists the direct leaf children in insertion order. Nested
// bundles are skipped.
func (b *Bundle) FlatProducts() []FlatProduct {
	var out []FlatProduct
	for _, c := range b.children {
		if l, ok := c.(*Leaf); ok {
			out = append(out, FlatProduct{ID: l.id, Name: l.name, Price: l.price})
		}
	}
	return out
}

func pad(indent int) string {
	if indent <= 0 {
		return ""
	}
	return strings.Repeat("  ", indent)
}

func equal(a, b Node) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		if !ok || x == nil || y == nil {
			return false
		}
		return x.id == y.id && x.name == y.name &&
			x.price.Equal(y.price) && x.description == y.description
	case *Bundle:
		y, ok := b.(*Bundle)
		if !ok || x == nil || y == nil {
			return false
		}
		if x.name != y.name || x.description != y.description || len(x.children) != len(y.children) {
			return false
		}
		for i := range x.children {
			if !equal(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
