package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind enumerates the decorations the storefront can apply.
type Kind int

const (
	// GiftWrap wraps the purchase as a gift.
	GiftWrap Kind = iota + 1
	// ExpressShipping ships the purchase with priority handling.
	ExpressShipping
	// Personalization engraves or prints customer-provided text.
	Personalization
	// Insurance covers the purchase against loss in transit.
	Insurance
)

// kindTable is the dispatch table for Kind. Index 0 is left empty for the
// zero Kind.
var kindTable = [...]struct {
	name      string
	surcharge decimal.Decimal
}{
	GiftWrap:        {name: "Gift Wrap", surcharge: decimal.RequireFromString("5.00")},
	ExpressShipping: {name: "Express Shipping", surcharge: decimal.RequireFromString("15.00")},
	Personalization: {name: "Personalization", surcharge: decimal.RequireFromString("10.00")},
	Insurance:       {name: "Insurance", surcharge: decimal.RequireFromString("7.50")},
}

// Kinds returns every known decoration kind in registry order.
func Kinds() []Kind {
	return []Kind{GiftWrap, ExpressShipping, Personalization, Insurance}
}

// ParseKind looks a decoration kind up by its customer-facing name. Matching
// is exact.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if kindTable[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// Valid reports whether k is one of the registered kinds.
func (k Kind) Valid() bool {
	return k > 0 && int(k) < len(kindTable)
}

// String returns the customer-facing name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTable[k].name
}

// Surcharge returns the flat cost of the kind. Unknown kinds cost nothing.
func (k Kind) Surcharge() decimal.Decimal {
	if !k.Valid() {
		return decimal.Zero
	}
	return kindTable[k].surcharge
}

// Decoration is one applied add-on. Text is only meaningful for
// Personalization.
type Decoration struct {
	Kind Kind
	Text string
}

// Surcharge returns the flat cost of the decoration.
func (d Decoration) Surcharge() decimal.Decimal {
	return d.Kind.Surcharge()
}

// Fragment returns the text appended to the description of the wrapped item.
func (d Decoration) Fragment() string {
	cost := d.Surcharge().StringFixed(2)
	if d.Kind == Personalization {
		return fmt.Sprintf(" + %s: '%s' ($%s)", d.Kind, d.Text, cost)
	}
	return fmt.Sprintf(" + %s ($%s)", d.Kind, cost)
}
