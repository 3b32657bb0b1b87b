// Package money provides the fixed-precision monetary value used for every
// currency figure in the system. Amounts are decimal end to end, never
// floating point at rest, and are stored in MongoDB as Decimal128.
//
// Arithmetic keeps full decimal precision; rounding to currency precision
// (two decimal places) happens only at presentation time via Rounded or
// Display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Money is a signed decimal amount in the group's single currency.
// The zero value is £0.00 and ready to use.
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money { return Money{} }

// FromString parses a decimal string such as "12.50" or "-3".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse parses a decimal string and panics on failure. For constants
// and tests only.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt returns a whole-unit amount (e.g. FromInt(5) is 5.00).
func FromInt(n int64) Money { return Money{d: decimal.NewFromInt(n)} }

// Add returns m + other.
func (m Money) Add(other Money) Money { return Money{d: m.d.Add(other.d)} }

// Sub returns m - other.
func (m Money) Sub(other Money) Money { return Money{d: m.d.Sub(other.d)} }

// Neg returns -m.
func (m Money) Neg() Money { return Money{d: m.d.Neg()} }

// Abs returns the absolute value of m.
func (m Money) Abs() Money { return Money{d: m.d.Abs()} }

// MulInt returns m scaled by a whole count, e.g. a per-unit cost times a
// guest count.
func (m Money) MulInt(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// DivInt divides m by a whole count at full working precision. Callers must
// reject n == 0 before calling; a zero divisor panics.
func (m Money) DivInt(n int) Money {
	return Money{d: m.d.Div(decimal.NewFromInt(int64(n)))}
}

// Rounded returns m rounded to currency precision (two decimal places).
func (m Money) Rounded() Money { return Money{d: m.d.Round(2)} }

// Cmp compares m and other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int { return m.d.Cmp(other.d) }

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(other Money) bool { return m.d.Equal(other.d) }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.d.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.d.IsPositive() }

// String returns the exact decimal representation, e.g. "7.333333".
func (m Money) String() string { return m.d.String() }

// Display returns the amount rounded to currency precision with a fixed two
// decimal places, e.g. "7.33".
func (m Money) Display() string { return m.d.StringFixed(2) }

// MarshalBSONValue stores the amount as a BSON Decimal128.
func (m Money) MarshalBSONValue() (byte, []byte, error) {
	d128, err := bson.ParseDecimal128(m.d.String())
	if err != nil {
		return 0, nil, fmt.Errorf("money: to decimal128: %w", err)
	}
	t, data, err := bson.MarshalValue(d128)
	return byte(t), data, err
}

// UnmarshalBSONValue reads a Decimal128, or tolerates doubles and strings
// produced by older imports.
func (m *Money) UnmarshalBSONValue(t byte, data []byte) error {
	switch bson.Type(t) {
	case bson.TypeDecimal128:
		var d128 bson.Decimal128
		if err := bson.UnmarshalValue(bson.Type(t), data, &d128); err != nil {
			return err
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("money: from decimal128 %q: %w", d128.String(), err)
		}
		m.d = d
		return nil
	case bson.TypeDouble:
		var f float64
		if err := bson.UnmarshalValue(bson.Type(t), data, &f); err != nil {
			return err
		}
		m.d = decimal.NewFromFloat(f)
		return nil
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(bson.Type(t), data, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("money: from string %q: %w", s, err)
		}
		m.d = d
		return nil
	default:
		return fmt.Errorf("money: cannot decode BSON type 0x%02x", t)
	}
}
