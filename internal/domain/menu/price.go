package menu

import (
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Price is a backend price value. The backend sends prices either as a JSON
// number or as a string that may contain currency symbols and separators
// ("45000", "$12.90", "12 000"). Decoding keeps the value as-is; formatting
// rules live in internal/format.
type Price struct {
	kind   priceKind
	number float64
	text   string
}

type priceKind uint8

const (
	priceAbsent priceKind = iota
	priceNumber
	priceText
)

// NumberPrice returns a Price holding a numeric value.
func NumberPrice(v float64) Price {
	return Price{kind: priceNumber, number: v}
}

// TextPrice returns a Price holding a raw string value.
func TextPrice(s string) Price {
	return Price{kind: priceText, text: s}
}

// Number returns the numeric value and whether the price was sent as a number.
func (p Price) Number() (float64, bool) {
	return p.number, p.kind == priceNumber
}

// Text returns the raw string value and whether the price was sent as a string.
func (p Price) Text() (string, bool) {
	return p.text, p.kind == priceText
}

// IsAbsent reports whether no price was decoded (missing or null field).
func (p Price) IsAbsent() bool {
	return p.kind == priceAbsent
}

// UnmarshalJSON accepts a number, a string, or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	switch d.Next() {
	case jx.Number:
		n, err := d.Float64()
		if err != nil {
			return errors.Wrap(err, "decode price number")
		}
		*p = NumberPrice(n)
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return errors.Wrap(err, "decode price string")
		}
		*p = TextPrice(s)
	case jx.Null:
		*p = Price{}
	default:
		return errors.Errorf("unexpected price token %q", d.Next())
	}
	return nil
}

// MarshalJSON writes the price back in the form it arrived in.
func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case priceNumber:
		return strconv.AppendFloat(nil, p.number, 'f', -1, 64), nil
	case priceText:
		e := &jx.Encoder{}
		e.Str(p.text)
		return e.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
