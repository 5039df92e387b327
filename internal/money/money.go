// Package money parses loosely-typed JSON amounts and formats currency.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid amount")

// MaxAmount is the largest value a decimal(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// MaxAmountText is MaxAmount as shown in validation messages.
const MaxAmountText = "99,999,999.99"

// maxAmountLen bounds the raw text before it reaches the decimal parser.
const maxAmountLen = 32

// Parse accepts a JSON number or a string such as "1,250.50". The second
// return value reports whether a value was supplied at all (absent, null and
// blank strings are not).
func Parse(raw json.RawMessage) (decimal.Decimal, bool, error) {
	s, present := scalar(raw)
	if !present {
		return decimal.Zero, false, nil
	}

	s = strings.ReplaceAll(s, ",", "")
	if len(s) > maxAmountLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, true, ErrInvalid
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true, ErrInvalid
	}
	return d, true, nil
}

// WithinLimit reports whether d fits a money column.
func WithinLimit(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// HasAtMostCents reports whether d has no more than two decimal places.
func HasAtMostCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// ParseID reads a positive integer id sent either as a number or a string.
func ParseID(raw json.RawMessage) (uint, bool) {
	s, present := scalar(raw)
	if !present {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// ParseInt reads an integer sent either as a number or a string.
func ParseInt(raw json.RawMessage) (int, bool, error) {
	s, present := scalar(raw)
	if !present {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, true, ErrInvalid
	}
	return n, true, nil
}

func scalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", true
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", false
		}
		return s, true
	}

	return string(raw), true
}

// Format renders "LKR 1,234.50".
func Format(currency string, d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return strings.TrimSpace(currency + " " + sign + b.String() + "." + frac)
}
