package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity of one product on a single line.
const MaxQuantity = 10000

// Sentinel errors for quote validation.
var (
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.Errorf("quantity must be between 1 and %d", MaxQuantity)
)

// QuoteRequest is a single product line with the add-ons the customer asked for.
type QuoteRequest struct {
	ProductID           int64
	Name                string
	UnitPrice           decimal.Decimal
	Quantity            int
	Description         string
	Decorations         []string
	PersonalizationText string
}

// Quotation is the priced result of a QuoteRequest.
type Quotation struct {
	BaseTotal        decimal.Decimal
	DecorationsTotal decimal.Decimal
	FinalPrice       decimal.Decimal
	Description      string
	Applied          []Decoration
}

// Quote multiplies the unit price by the quantity, decorates the result and
// reports the split between goods and add-ons.
func Quote(req QuoteRequest) (Quotation, error) {
	if req.UnitPrice.IsNegative() {
		return Quotation{}, ErrNegativePrice
	}
	if req.Quantity <= 0 || req.Quantity > MaxQuantity {
		return Quotation{}, ErrInvalidQuantity
	}

	baseTotal := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)
	base := NewItem(req.ProductID, req.Name, baseTotal, req.Description)

	decorated := Apply(base, req.Decorations, Options{
		PersonalizationText: req.PersonalizationText,
	})

	final := decorated.Price()
	return Quotation{
		BaseTotal:        baseTotal,
		DecorationsTotal: final.Sub(baseTotal),
		FinalPrice:       final,
		Description:      decorated.Description(),
		Applied:          decorated.Decorations(),
	}, nil
}
