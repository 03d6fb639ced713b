package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth année ou numéro de mois hors bornes
var ErrInvalidMonth = errors.New("invalid calendar month")

// Month représente un mois calendaire (année + numéro), reconstruit à partir
// des colonnes year / month_num
//   - Immutable, égalité par valeur
type Month struct {
	year  int
	month time.Month
}

// NewMonth valide et crée un Month
func NewMonth(year, month int) (Month, error) {
	if year <= 0 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, month)
	}
	return Month{year: year, month: time.Month(month)}, nil
}

// Year retourne l'année
func (m Month) Year() int {
	return m.year
}

// Number retourne le numéro du mois (1-12)
func (m Month) Number() int {
	return int(m.month)
}

// Time retourne le premier jour du mois à minuit UTC
func (m Month) Time() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

// Label formate en YYYY-MM
func (m Month) Label() string {
	return m.Time().Format("2006-01")
}

// Before ordre chronologique
func (m Month) Before(other Month) bool {
	if m.year != other.year {
		return m.year < other.year
	}
	return m.month < other.month
}
