package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/storefront/internal/domain/delivery"
	"github.com/xenking/storefront/internal/domain/payment"
)

// ProcessPayment charges an order through the named payment provider.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var (
		provider  string
		hasAmount bool
	)
	req := payment.Request{UserID: h.demoUserID}
	err := decodeBody(w, r, map[string]fieldDecoder{
		"order_id": func(d *jx.Decoder) (err error) {
			req.OrderID, err = decodeText(d)
			return err
		},
		"user_id": func(d *jx.Decoder) (err error) {
			req.UserID, err = decodeID(d)
			return err
		},
		"payment_provider": func(d *jx.Decoder) (err error) {
			provider, err = d.Str()
			return err
		},
		"amount": func(d *jx.Decoder) (err error) {
			req.Amount, err = decodeMoney(d)
			hasAmount = err == nil
			return err
		},
	})
	if err == nil {
		switch {
		case req.OrderID == "":
			err = badRequest("order_id is required")
		case !hasAmount:
			err = badRequest("amount is required")
		}
	}
	if err != nil {
		writeDecodeError(w, r, "decode payment", err)
		return
	}

	res, err := h.payments.Process(r.Context(), payment.Provider(provider), req)
	if err != nil {
		if errors.Is(err, payment.ErrUnsupportedProvider) || errors.Is(err, payment.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternal(w, r, "process payment", err)
		return
	}
	h.charges.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("provider", string(res.Provider)),
		attribute.String("status", res.Status),
	))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("payment_id", func(e *jx.Encoder) { e.Str(res.PaymentID) })
			e.Field("status", func(e *jx.Encoder) { e.Str(res.Status) })
			e.Field("amount", func(e *jx.Encoder) { encodeMoney(e, res.Amount) })
			e.Field("provider", func(e *jx.Encoder) { e.Str(string(res.Provider)) })
		})
	})
}

// ScheduleDelivery books the shipment of an order with the named carrier.
func (h *Handler) ScheduleDelivery(w http.ResponseWriter, r *http.Request) {
	var (
		provider string
		req      delivery.Request
	)
	err := decodeBody(w, r, map[string]fieldDecoder{
		"order_id": func(d *jx.Decoder) (err error) {
			req.OrderID, err = decodeText(d)
			return err
		},
		"delivery_provider": func(d *jx.Decoder) (err error) {
			provider, err = d.Str()
			return err
		},
		"shipping_address": func(d *jx.Decoder) error {
			return decodeObject(d, map[string]fieldDecoder{
				"name": func(d *jx.Decoder) (err error) {
					req.ShippingAddress.Name, err = decodeText(d)
					return err
				},
				"address": func(d *jx.Decoder) (err error) {
					req.ShippingAddress.Address, err = decodeText(d)
					return err
				},
			})
		},
	})
	if err == nil && req.OrderID == "" {
		err = badRequest("order_id is required")
	}
	if err != nil {
		writeDecodeError(w, r, "decode delivery", err)
		return
	}

	res, err := h.deliveries.Schedule(r.Context(), delivery.Provider(provider), req)
	if err != nil {
		if errors.Is(err, delivery.ErrUnsupportedProvider) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternal(w, r, "schedule delivery", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("tracking_id", func(e *jx.Encoder) { e.Str(res.TrackingID) })
			e.Field("status", func(e *jx.Encoder) { e.Str(res.Status) })
			e.Field("estimated_delivery", func(e *jx.Encoder) { e.Str(res.EstimatedDelivery) })
			e.Field("provider", func(e *jx.Encoder) { e.Str(string(res.Provider)) })
		})
	})
}
