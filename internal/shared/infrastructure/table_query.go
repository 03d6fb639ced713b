package infrastructure

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"otpreport/internal/shared/domain"
)

// QueryTable exécute une requête quelconque et retourne une table typée.
// Le type de chaque colonne vient des métadonnées du driver; quand le driver
// n'en fournit pas (expressions SQLite), on prend le type Go de la première
// valeur non NULL, et AppendRow rejette toute valeur incohérente ensuite.
func (r *BaseRepository) QueryTable(query string, args ...interface{}) (*domain.Table, error) {
	rows, err := r.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	var raw [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(colTypes))
		ptrs := make([]interface{}, len(colTypes))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		raw = append(raw, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	columns := make([]domain.Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = domain.Column{Name: ct.Name(), Type: declaredType(ct, raw, i)}
	}

	table := domain.NewTable(columns...)
	for _, values := range raw {
		for i, v := range values {
			cv, err := convertValue(columns[i].Type, v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", columns[i].Name, err)
			}
			values[i] = cv
		}
		if err := table.AppendRow(values...); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// columnTypes noms de types SQL reconnus, après normalisation par typeName
var columnTypes = map[string]domain.ColumnType{
	"INT":       domain.ColumnInteger,
	"INT2":      domain.ColumnInteger,
	"INT4":      domain.ColumnInteger,
	"INT8":      domain.ColumnInteger,
	"INTEGER":   domain.ColumnInteger,
	"TINYINT":   domain.ColumnInteger,
	"SMALLINT":  domain.ColumnInteger,
	"MEDIUMINT": domain.ColumnInteger,
	"BIGINT":    domain.ColumnInteger,

	"SERIAL":      domain.ColumnInteger,
	"SMALLSERIAL": domain.ColumnInteger,
	"BIGSERIAL":   domain.ColumnInteger,

	"FLOAT":            domain.ColumnFloat,
	"FLOAT4":           domain.ColumnFloat,
	"FLOAT8":           domain.ColumnFloat,
	"DOUBLE":           domain.ColumnFloat,
	"DOUBLE PRECISION": domain.ColumnFloat,
	"REAL":             domain.ColumnFloat,
	"NUMERIC":          domain.ColumnFloat,
	"DECIMAL":          domain.ColumnFloat,
	"MONEY":            domain.ColumnFloat,

	"DATE":                        domain.ColumnDate,
	"DATETIME":                    domain.ColumnDate,
	"TIMESTAMP":                   domain.ColumnDate,
	"TIMESTAMPTZ":                 domain.ColumnDate,
	"TIMESTAMP WITH TIME ZONE":    domain.ColumnDate,
	"TIMESTAMP WITHOUT TIME ZONE": domain.ColumnDate,
}

// typeName normalise un type déclaré: "decimal(10,2)" -> "DECIMAL", "UNSIGNED BIGINT" -> "BIGINT"
func typeName(declared string) string {
	name := strings.ToUpper(strings.TrimSpace(declared))
	if i := strings.IndexByte(name, '('); i >= 0 {
		if j := strings.IndexByte(name[i:], ')'); j >= 0 {
			name = name[:i] + name[i+j+1:]
		} else {
			name = name[:i]
		}
	}
	name = strings.TrimPrefix(name, "UNSIGNED ")
	name = strings.TrimSuffix(name, " UNSIGNED")
	return strings.Join(strings.Fields(name), " ")
}

// columnTypeFromName ok=false quand le driver ne déclare aucun type
func columnTypeFromName(declared string) (domain.ColumnType, bool) {
	name := typeName(declared)
	if name == "" {
		return domain.ColumnText, false
	}
	if t, ok := columnTypes[name]; ok {
		return t, true
	}
	return domain.ColumnText, true
}

func declaredType(ct *sql.ColumnType, raw [][]interface{}, col int) domain.ColumnType {
	if t, ok := columnTypeFromName(ct.DatabaseTypeName()); ok {
		return t
	}

	for _, row := range raw {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			return domain.ColumnInteger
		case float64:
			return domain.ColumnFloat
		case time.Time:
			return domain.ColumnDate
		default:
			return domain.ColumnText
		}
	}
	return domain.ColumnText
}

// convertValue ramène les représentations des drivers ([]byte, string numérique...) au type déclaré
func convertValue(ct domain.ColumnType, v interface{}) (interface{}, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil, nil
	}

	s, isString := v.(string)
	switch ct {
	case domain.ColumnInteger:
		if isString {
			return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		}
	case domain.ColumnFloat:
		if isString {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		}
	case domain.ColumnText:
		if !isString {
			return fmt.Sprint(v), nil
		}
	}
	return v, nil
}
