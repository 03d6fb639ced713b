package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrColumnTypeMismatch une valeur ne correspond pas au type déclaré de sa colonne
	ErrColumnTypeMismatch = errors.New("value does not match declared column type")
	// ErrRowWidth nombre de valeurs différent du nombre de colonnes
	ErrRowWidth = errors.New("row width does not match column count")
	// ErrNoData table ou colonne sans valeur exploitable
	ErrNoData = errors.New("no data")
)

// ColumnType type déclaré d'une colonne de table
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnInteger
	ColumnFloat
	ColumnDate
)

// IsNumeric vrai pour les colonnes entières ou flottantes
func (t ColumnType) IsNumeric() bool {
	return t == ColumnInteger || t == ColumnFloat
}

func (t ColumnType) String() string {
	switch t {
	case ColumnInteger:
		return "integer"
	case ColumnFloat:
		return "float"
	case ColumnDate:
		return "date"
	default:
		return "text"
	}
}

// Column nom + type déclaré
type Column struct {
	Name string
	Type ColumnType
}

// Table résultat tabulaire ordonné, colonnes nommées et typées.
// Les valeurs sont normalisées à l'ajout: string, int64, float64, time.Time ou nil (NULL).
type Table struct {
	columns []Column
	rows    [][]interface{}
}

// NewTable crée une table vide avec ses colonnes déclarées
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// Columns retourne les colonnes déclarées
func (t *Table) Columns() []Column {
	return t.columns
}

// Rows retourne les lignes dans l'ordre d'insertion
func (t *Table) Rows() [][]interface{} {
	return t.rows
}

// Len nombre de lignes
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow ajoute une ligne après vérification des types
func (t *Table) AppendRow(values ...interface{}) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowWidth, len(values), len(t.columns))
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		nv, err := normalize(t.columns[i].Type, v)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", t.columns[i].Name, len(t.rows)+1, err)
		}
		row[i] = nv
	}

	t.rows = append(t.rows, row)
	return nil
}

func normalize(ct ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch ct {
	case ColumnText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case ColumnInteger:
		if n, ok := asInt64(v); ok {
			return n, nil
		}
	case ColumnFloat:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		}
		if n, ok := asInt64(v); ok {
			return float64(n), nil
		}
	case ColumnDate:
		if d, ok := v.(time.Time); ok {
			return d, nil
		}
	}

	return nil, fmt.Errorf("%w: %T is not %s", ErrColumnTypeMismatch, v, ct)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

// NumericSummary min / médiane / max d'une colonne numérique
type NumericSummary struct {
	Min    float64
	Median float64
	Max    float64
}

// Summarize calcule le résumé de la colonne col (valeurs NULL ignorées)
func (t *Table) Summarize(col int) (NumericSummary, error) {
	if col < 0 || col >= len(t.columns) {
		return NumericSummary{}, fmt.Errorf("column index %d out of range", col)
	}
	if !t.columns[col].Type.IsNumeric() {
		return NumericSummary{}, fmt.Errorf("%w: column %q is %s", ErrColumnTypeMismatch, t.columns[col].Name, t.columns[col].Type)
	}

	values := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		switch v := row[col].(type) {
		case int64:
			values = append(values, float64(v))
		case float64:
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return NumericSummary{}, ErrNoData
	}

	sort.Float64s(values)
	mid := len(values) / 2
	median := values[mid]
	if len(values)%2 == 0 {
		median = (values[mid-1] + values[mid]) / 2
	}

	return NumericSummary{Min: values[0], Median: median, Max: values[len(values)-1]}, nil
}
