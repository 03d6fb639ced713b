package domain

import (
	"fmt"
)

// Count représente un compteur de vols (secteurs, annulations, retards...)
type Count struct {
	value int64
}

// NewCount crée un Count avec validation
func NewCount(value int64) (Count, error) {
	if value < 0 {
		return Count{}, ErrNegativeCount
	}
	return Count{value: value}, nil
}

// MustNewCount crée un Count en paniquant si invalide
func MustNewCount(value int64) Count {
	c, err := NewCount(value)
	if err != nil {
		panic(fmt.Sprintf("invalid count: %v", err))
	}
	return c
}

// Value retourne la valeur
func (c Count) Value() int64 {
	return c.value
}

// PercentOf retourne c / total * 100 arrondi à 2 décimales
func (c Count) PercentOf(total Count) (Percentage, error) {
	return NewPercentage(c.value, total.value)
}
