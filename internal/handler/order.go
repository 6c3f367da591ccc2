package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront/internal/domain/order"
)

// PlaceOrder places an order for the given lines and add-ons.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var (
		req     order.PlaceOrderRequest
		hasUser bool
	)
	err := decodeBody(w, r, map[string]fieldDecoder{
		"user_id": func(d *jx.Decoder) (err error) {
			req.UserID, err = decodeID(d)
			hasUser = err == nil
			return err
		},
		"items": func(d *jx.Decoder) (err error) {
			req.Items, err = decodeLines(d)
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
	if err == nil && !hasUser {
		err = badRequest("user_id is required")
	}
	if err != nil {
		writeDecodeError(w, r, "decode order", err)
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), req)
	if err != nil {
		if status, ok := mapOrderError(err); ok {
			writeError(w, status, err.Error())
			return
		}
		writeInternal(w, r, "place order", err)
		return
	}
	h.ordersPlaced.Add(r.Context(), 1)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("order_id", func(e *jx.Encoder) { e.Str(o.ID) })
			e.Field("items_amount", func(e *jx.Encoder) { encodeMoney(e, o.ItemsAmount) })
			e.Field("decorators_amount", func(e *jx.Encoder) { encodeMoney(e, o.DecorationsAmount) })
			e.Field("final_amount", func(e *jx.Encoder) { encodeMoney(e, o.Total) })
			e.Field("description", func(e *jx.Encoder) { e.Str(o.Description) })
		})
	})
}

func decodeLines(d *jx.Decoder) ([]order.LineRequest, error) {
	var lines []order.LineRequest
	err := d.Arr(func(d *jx.Decoder) error {
		line := order.LineRequest{Quantity: 1}
		var hasID bool
		err := decodeObject(d, map[string]fieldDecoder{
			"product_id": func(d *jx.Decoder) (err error) {
				line.ProductID, err = decodeID(d)
				hasID = err == nil
				return err
			},
			"quantity": func(d *jx.Decoder) (err error) {
				line.Quantity, err = d.Int()
				return err
			},
		})
		if err != nil {
			return err
		}
		if !hasID {
			return badRequest("items[%d].product_id is required", len(lines))
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// mapOrderError converts domain errors to HTTP status codes.
func mapOrderError(err error) (int, bool) {
	if errors.Is(err, order.ErrEmptyItems) {
		return http.StatusBadRequest, true
	}

	if errors.Is(err, order.ErrAmountTooLarge) {
		return http.StatusUnprocessableEntity, true
	}

	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		return http.StatusUnprocessableEntity, true
	}

	var pnfErr *order.ProductNotFoundError
	if errors.As(err, &pnfErr) {
		return http.StatusNotFound, true
	}

	return 0, false
}

// ListUserOrders returns the order history of user_id, or of the demo user
// when the parameter is absent.
func (h *Handler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := h.demoUserID
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user_id must be an integer")
			return
		}
		userID = id
	}

	views, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		writeInternal(w, r, "list user orders", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, v := range views {
				encodeOrderView(e, v)
			}
		})
	})
}

func encodeOrderView(e *jx.Encoder, v order.View) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(v.ID) })
		e.Field("order_date", func(e *jx.Encoder) { e.Str(v.CreatedAt.Format(time.DateOnly)) })
		e.Field("total_amount", func(e *jx.Encoder) { encodeMoney(e, v.Total) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(v.Status)) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range v.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
						e.Field("price", func(e *jx.Encoder) { encodeMoney(e, item.UnitPrice) })
					})
				}
			})
		})
		e.Field("decorators", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, name := range v.Decorations {
					e.Str(name)
				}
			})
		})
	})
}
