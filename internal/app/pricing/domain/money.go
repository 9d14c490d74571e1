package domain

import (
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// A nil *Money reads as zero everywhere the engine touches it, so optional amounts
// (an unset subtotal, an absent line total) never need special casing by callers.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents $2499.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

func (m *Money) value() *big.Rat {
	if m == nil || m.rat == nil {
		return new(big.Rat)
	}
	return m.rat
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.value())
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.value(), other.value())}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Mul(m.value(), rat)}
}

// Percent returns pct percent of this amount (m * pct / 100).
func (m *Money) Percent(pct *Money) *Money {
	multiplier := new(big.Rat).Quo(pct.value(), big.NewRat(100, 1))
	return m.MultiplyByRat(multiplier)
}

// Min returns the smaller of the two amounts as a new Money instance.
func (m *Money) Min(other *Money) *Money {
	if m.LessThan(other) {
		return m.Copy()
	}
	return other.Copy()
}

// Round rounds to the given number of decimal places, halves away from zero.
// For the non-negative amounts the engine produces this is standard half-up rounding.
func (m *Money) Round(places int) *Money {
	rounded, _ := new(big.Rat).SetString(m.value().FloatString(places))
	return &Money{rat: rounded}
}

// Truncate drops digits beyond the given number of decimal places, rounding
// toward zero.
func (m *Money) Truncate(places int) *Money {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Int).Mul(m.value().Num(), scale)
	scaled.Quo(scaled, m.value().Denom())
	return &Money{rat: new(big.Rat).SetFrac(scaled, scale)}
}

// Cmp compares two amounts and returns -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.value().Cmp(other.value())
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.value().Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.value().Sign() < 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.Cmp(other) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.Cmp(other) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.Cmp(other) == 0
}

// String returns the value with two decimal places.
func (m *Money) String() string {
	return m.value().FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.value())}
}
