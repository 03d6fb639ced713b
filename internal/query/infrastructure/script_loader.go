package infrastructure

import (
	"fmt"
	"os"

	"otpreport/internal/query/domain"
)

// DefaultQueriesFile script lu par défaut par cmd/runqueries
const DefaultQueriesFile = "sql/queries.sql"

// LoadStatements lit un fichier SQL et le découpe en requêtes
func LoadStatements(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	statements := domain.SplitStatements(string(raw))
	if len(statements) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNoStatements)
	}
	return statements, nil
}
