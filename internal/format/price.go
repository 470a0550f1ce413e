// Package format holds pure presentation helpers: price and phone number
// formatting for the single supported locale.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mirkafe/menu-web/internal/domain/menu"
)

// PricePlaceholder is rendered when a price cannot be parsed.
const PricePlaceholder = "—"

// somSuffix is the fixed currency suffix.
const somSuffix = " so'm"

// Som renders a backend price as a display string: whole so'm with
// space-separated thousands grouping, e.g. 1500000 -> "1 500 000 so'm".
//
// Rules, in order:
//   - numeric price: truncate toward zero;
//   - string containing '$': strip everything but digits and '.', parse as a
//     decimal, truncate toward zero;
//   - other strings: strip non-digits and parse as an integer;
//   - unparsable or negative values render the placeholder glyph.
func Som(p menu.Price) string {
	n, ok := somValue(p)
	if !ok || n < 0 {
		return PricePlaceholder
	}
	return groupThousands(n) + somSuffix
}

// somValue extracts the whole-unit amount from a price.
func somValue(p menu.Price) (int64, bool) {
	if v, ok := p.Number(); ok {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1<<62 {
			return 0, false
		}
		return int64(math.Trunc(v)), true
	}

	s, ok := p.Text()
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)

	if strings.Contains(s, "$") {
		cleaned := keepRunes(s, "0123456789.")
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	}

	digits := keepRunes(s, "0123456789")
	if digits == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, false
	}
	return d.IntPart(), true
}

// keepRunes strips every byte of s not present in allowed.
func keepRunes(s, allowed string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(allowed, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// groupThousands inserts a space every three digits counting from the right.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
