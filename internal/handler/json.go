package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// badRequestError marks input that could not be decoded or validated.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: errors.Errorf(format, args...).Error()}
}

// fieldDecoder decodes the value of one object field.
type fieldDecoder func(d *jx.Decoder) error

// decodeBody reads a JSON object from r and dispatches every known field to
// its decoder. Unknown fields are skipped.
func decodeBody(w http.ResponseWriter, r *http.Request, fields map[string]fieldDecoder) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(err, "read body")
	}
	return decodeObject(jx.DecodeBytes(body), fields)
}

func decodeObject(d *jx.Decoder, fields map[string]fieldDecoder) error {
	if d.Next() != jx.Object {
		return badRequest("request body must be a JSON object")
	}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		f, ok := fields[key]
		if !ok {
			return d.Skip()
		}
		if err := f(d); err != nil {
			var br *badRequestError
			if errors.As(err, &br) {
				return err
			}
			return badRequest("invalid %s: %v", key, err)
		}
		return nil
	})
	if err != nil {
		var br *badRequestError
		if errors.As(err, &br) {
			return err
		}
		return badRequest("malformed JSON: %v", err)
	}
	return nil
}

// maxMoney is the largest price or amount accepted from a client. It is the
// largest value a NUMERIC(10, 2) column holds.
var maxMoney = decimal.RequireFromString("99999999.99")

// maxMoneyLen bounds the literal before it is parsed.
const maxMoneyLen = 32

// decodeMoney accepts a JSON number or a numeric string and parses it
// without going through float64. The value must have at most two decimal
// places and an absolute value of at most maxMoney.
func decodeMoney(d *jx.Decoder) (decimal.Decimal, error) {
	var raw string
	switch d.Next() {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw = string(n)
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw = s
	default:
		return decimal.Decimal{}, errors.New("expected a number")
	}
	if len(raw) > maxMoneyLen {
		return decimal.Decimal{}, errors.Errorf("number is longer than %d characters", maxMoneyLen)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errors.Errorf("%q is not a number", raw)
	}
	// Comparisons rescale to a common exponent, so the exponent is checked
	// before any arithmetic.
	if exp := v.Exponent(); exp > 8 || exp < -maxMoneyLen {
		return decimal.Decimal{}, errors.Errorf("%q is out of range", raw)
	}
	if !v.Equal(v.Truncate(2)) {
		return decimal.Decimal{}, errors.Errorf("%q has more than two decimal places", raw)
	}
	if v.Abs().GreaterThan(maxMoney) {
		return decimal.Decimal{}, errors.Errorf("%q exceeds %s", raw, maxMoney.StringFixed(2))
	}
	return v, nil
}

// decodeID accepts a JSON integer or an integer string.
func decodeID(d *jx.Decoder) (int64, error) {
	switch d.Next() {
	case jx.Number:
		return d.Int64()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, err
		}
		return strconv.ParseInt(s, 10, 64)
	default:
		return 0, errors.New("expected an integer")
	}
}

// decodeText reads a string, treating null as empty. Numbers are accepted
// and kept verbatim so numeric order IDs work.
func decodeText(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.Null:
		return "", d.Null()
	case jx.Number:
		n, err := d.Num()
		return string(n), err
	default:
		return d.Str()
	}
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	var out []string
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

func encodeMoney(e *jx.Encoder, v decimal.Decimal) {
	e.Raw([]byte(v.StringFixed(2)))
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// writeInternal logs err and answers 500 without leaking the cause.
func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// writeDecodeError answers 400 for bad input and 500 for anything else.
func writeDecodeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var br *badRequestError
	if errors.As(err, &br) {
		writeError(w, http.StatusBadRequest, br.msg)
		return
	}
	writeInternal(w, r, op, err)
}
