package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrZeroDenominator le dénominateur d'un ratio doit être strictement positif
	ErrZeroDenominator = errors.New("denominator must be positive")
	// ErrNegativeCount les compteurs OTP ne sont jamais négatifs
	ErrNegativeCount = errors.New("count cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// Percentage représente un ratio de compteurs exprimé en %, arrondi à 2 décimales
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage calcule numerator/denominator*100 arrondi à 2 décimales
func NewPercentage(numerator, denominator int64) (Percentage, error) {
	if denominator <= 0 {
		return Percentage{}, ErrZeroDenominator
	}
	if numerator < 0 {
		return Percentage{}, ErrNegativeCount
	}

	v := decimal.NewFromInt(numerator).
		Mul(hundred).
		DivRound(decimal.NewFromInt(denominator), 2)

	return Percentage{value: v}, nil
}

// Float64 retourne la valeur arrondie
func (p Percentage) Float64() float64 {
	return p.value.InexactFloat64()
}

// String formate avec 2 décimales
func (p Percentage) String() string {
	return p.value.StringFixed(2)
}
