// Package core implements the cash-book domain engine: money and date
// normalization, transaction classification, filtering, sorting,
// aggregation, and report building. Everything here is pure; storage
// and transport live elsewhere.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in integer cents. Arithmetic stays in
// cents; Units is for display only.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money with half-up rounding
// on the third decimal place. It accepts both dot (12.34) and comma
// (12,34) separators. Zero is a valid amount; signs and any other junk
// yield ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents (rounds up)
//	ParseAmount("0")      -> 0 cents
//	ParseAmount("-5")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		// "0." alone is fine, but "." alone is not
		if s == "." {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(x Money) Money { return Money{Cents: m.Cents + x.Cents} }

// Sub returns the difference of two amounts. Negative results are
// meaningful for balances.
func (m Money) Sub(x Money) Money { return Money{Cents: m.Cents - x.Cents} }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.Cents == 0 }

// Units returns the amount in currency units as a float64 for display.
// Use cents for calculations.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON renders the amount in currency units.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Units())
}

// UnmarshalJSON parses an amount given in currency units, rounding
// half away from zero to whole cents.
func (m *Money) UnmarshalJSON(data []byte) error {
	var units float64
	if err := json.Unmarshal(data, &units); err != nil {
		return err
	}
	if units >= 0 {
		m.Cents = int64(units*100 + 0.5)
	} else {
		m.Cents = int64(units*100 - 0.5)
	}
	return nil
}

var (
	_ json.Marshaler   = (*Money)(nil)
	_ json.Unmarshaler = (*Money)(nil)
)
