package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (centavos).
type Money int64

// ErrOverflow is returned when an amount does not fit in Money.
var ErrOverflow = errors.New("amount out of range")

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FromDecimal rounds d to centavos, half away from zero.
func FromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Round(2).Shift(2)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, fmt.Errorf("%s: %w", d.String(), ErrOverflow)
	}
	return Money(minor.IntPart()), nil
}

// Parse reads a price as written in a price list cell ("1500", "1500.5", "$ 1500").
func Parse(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return FromDecimal(d)
}

// Mul returns m*qty, or ErrOverflow when the product does not fit.
func (m Money) Mul(qty int) (Money, error) {
	if m == 0 || qty == 0 {
		return 0, nil
	}
	q := Money(qty)
	p := m * q
	if p/q != m || (m == -1 && q == math.MinInt64) || (q == -1 && m == math.MinInt64) {
		return 0, fmt.Errorf("%s x %d: %w", m.Plain(), qty, ErrOverflow)
	}
	return p, nil
}

// Add returns m+o, or ErrOverflow when the sum does not fit.
func (m Money) Add(o Money) (Money, error) {
	s := m + o
	if (o > 0 && s < m) || (o < 0 && s > m) {
		return 0, fmt.Errorf("%s + %s: %w", m.Plain(), o.Plain(), ErrOverflow)
	}
	return s, nil
}

func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -2) }

// String formats whole currency units with thousands separators: $12,345.
func (m Money) String() string {
	return "$" + humanize.Comma(m.Decimal().Round(0).IntPart())
}

// Plain is the fixed two-decimal form used in machine-readable output.
func (m Money) Plain() string {
	return m.Decimal().StringFixed(2)
}
