package pricing

import "github.com/shopspring/decimal"

// Decorated is a priced entity with an ordered list of decorations on top.
// A Decorated value is never mutated: With returns a new value.
type Decorated struct {
	inner       Priced
	decorations []Decoration
}

var _ Priced = (*Decorated)(nil)

// Wrap starts a decoration chain over inner.
func Wrap(inner Priced) *Decorated {
	return &Decorated{inner: inner}
}

// With returns a copy of d with one more decoration applied last.
func (d *Decorated) With(dec Decoration) *Decorated {
	decorations := make([]Decoration, len(d.decorations), len(d.decorations)+1)
	copy(decorations, d.decorations)
	return &Decorated{
		inner:       d.inner,
		decorations: append(decorations, dec),
	}
}

// Inner returns the entity the chain was started over.
func (d *Decorated) Inner() Priced {
	return d.inner
}

// Decorations returns the applied decorations in application order.
func (d *Decorated) Decorations() []Decoration {
	out := make([]Decoration, len(d.decorations))
	copy(out, d.decorations)
	return out
}

// Price returns the inner price plus every surcharge.
func (d *Decorated) Price() decimal.Decimal {
	return d.inner.Price().Add(d.Surcharges())
}

// Surcharges returns the sum of the applied surcharges.
func (d *Decorated) Surcharges() decimal.Decimal {
	total := decimal.Zero
	for _, dec := range d.decorations {
		total = total.Add(dec.Surcharge())
	}
	return total
}

// Description returns the inner description followed by the fragment of
// every decoration in application order.
func (d *Decorated) Description() string {
	desc := d.inner.Description()
	for _, dec := range d.decorations {
		desc += dec.Fragment()
	}
	return desc
}

// Options carries the extra parameters some decorations need.
type Options struct {
	// PersonalizationText is the text printed by the Personalization
	// decoration. Empty when the customer gave none.
	PersonalizationText string
}

// Apply folds the named decorations over base from left to right.
//
// Names that are not in the registry are skipped without error. Repeated
// names are applied repeatedly.
func Apply(base Priced, names []string, opts Options) *Decorated {
	d := Wrap(base)
	for _, name := range names {
		kind, ok := ParseKind(name)
		if !ok {
			continue
		}
		dec := Decoration{Kind: kind}
		if kind == Personalization {
			dec.Text = opts.PersonalizationText
		}
		d = d.With(dec)
	}
	return d
}
