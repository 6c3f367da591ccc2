package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/storefront/internal/domain/pricing"
)

// CalculatePrice quotes one product line with the requested add-ons.
//
// Request: {"product_id", "name", "base_price", "quantity", "description",
// "decorators", "personalization_text"}. quantity defaults to 1.
func (h *Handler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	req := pricing.QuoteRequest{Quantity: 1}
	var hasID, hasName, hasPrice bool

	err := decodeBody(w, r, map[string]fieldDecoder{
		"product_id": func(d *jx.Decoder) (err error) {
			req.ProductID, err = decodeID(d)
			hasID = err == nil
			return err
		},
		"name": func(d *jx.Decoder) (err error) {
			req.Name, err = d.Str()
			hasName = err == nil
			return err
		},
		"base_price": func(d *jx.Decoder) (err error) {
			req.UnitPrice, err = decodeMoney(d)
			hasPrice = err == nil
			return err
		},
		"quantity": func(d *jx.Decoder) (err error) {
			req.Quantity, err = d.Int()
			return err
		},
		"description": func(d *jx.Decoder) (err error) {
			req.Description, err = decodeText(d)
			return err
		},
		"decorators": func(d *jx.Decoder) (err error) {
			req.Decorations, err = decodeStrings(d)
			return err
		},
		"personalization_text": func(d *jx.Decoder) (err error) {
			req.PersonalizationText, err = decodeText(d)
			return err
		},
	})
	if err == nil {
		switch {
		case !hasID:
			err = badRequest("product_id is required")
		case !hasName:
			err = badRequest("name is required")
		case !hasPrice:
			err = badRequest("base_price is required")
		}
	}
	if err != nil {
		writeDecodeError(w, r, "decode quote", err)
		return
	}

	q, err := pricing.Quote(req)
	if err != nil {
		if errors.Is(err, pricing.ErrNegativePrice) || errors.Is(err, pricing.ErrInvalidQuantity) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternal(w, r, "quote", err)
		return
	}
	h.quotes.Add(r.Context(), 1, metric.WithAttributes(attribute.Int("decorations", len(q.Applied))))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("base_total", func(e *jx.Encoder) { encodeMoney(e, q.BaseTotal) })
			e.Field("decorators_total", func(e *jx.Encoder) { encodeMoney(e, q.DecorationsTotal) })
			e.Field("final_price", func(e *jx.Encoder) { encodeMoney(e, q.FinalPrice) })
			e.Field("description", func(e *jx.Encoder) { e.Str(q.Description) })
		})
	})
}
