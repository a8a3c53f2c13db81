// Package core provides money parsing and handling utilities.
//
// This file contains the exact decimal Money type used for every amount in
// the tracker, and its parsing and display helpers.
package core

import (
	"errors"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in major units.
type Money struct {
	value decimal.Decimal
}

var (
	ErrAmountFormat  = errors.New("amount is not a number")
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewMoney builds a Money from a decimal value.
func NewMoney(d decimal.Decimal) Money { return Money{value: d} }

// MustMoney parses s and panics on failure. Intended for tests and constants.
func MustMoney(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAmount converts a decimal string to Money.
//
// It accepts plain decimal numbers ("12", "12.34", "-3") and returns
// ErrAmountFormat when the text is not a number. Positivity is not checked
// here; callers use Validate or IsPositive so that a non-positive amount gets
// its own message.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("0")     -> 0, nil
//	ParseAmount("abc")   -> 0, ErrAmountFormat
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrAmountFormat
	}
	// decimal accepts exponents; the command grammar does not.
	if strings.ContainsAny(s, "eE") {
		return Money{}, ErrAmountFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrAmountFormat
	}
	return Money{value: d}, nil
}

// Validate returns ErrInvalidAmount unless the amount is strictly positive.
func (m Money) Validate() error {
	if !m.value.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) Cmp(n Money) int          { return m.value.Cmp(n.value) }
func (m Money) Decimal() decimal.Decimal { return m.value }

// String renders the amount with two decimals, e.g. "50.00".
func (m Money) String() string {
	return m.value.StringFixed(2)
}

// Exact renders every significant digit; it is the persisted form.
func (m Money) Exact() string {
	return m.value.String()
}

// Format renders the amount for the given ISO 4217 currency code, e.g.
// "$1,234.50" for USD. Unknown codes fall back to String.
func (m Money) Format(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return m.String()
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return formatMinor(minor, cur)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// formatMinor lays out minor units that do not fit in an int64 the same way
// go-money's Formatter does for those that do.
func formatMinor(minor decimal.Decimal, cur *money.Currency) string {
	sa := minor.Abs().String()
	if len(sa) <= cur.Fraction {
		sa = strings.Repeat("0", cur.Fraction-len(sa)+1) + sa
	}
	if cur.Thousand != "" {
		for i := len(sa) - cur.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + cur.Thousand + sa[i:]
		}
	}
	if cur.Fraction > 0 {
		sa = sa[:len(sa)-cur.Fraction] + cur.Decimal + sa[len(sa)-cur.Fraction:]
	}
	sa = strings.Replace(cur.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// IsCurrency reports whether code is a currency known to the formatter.
func IsCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// Sum adds all amounts; it returns zero for an empty slice.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.value)
	}
	return Money{value: total}
}
