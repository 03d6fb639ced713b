package infrastructure

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"otpreport/internal/query/domain"
	shareddomain "otpreport/internal/shared/domain"
)

func TestLoadStatements(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "queries.sql")
	if err := os.WriteFile(path, []byte("SELECT 1;\n\n;SELECT 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadStatements(path)
	if err != nil {
		t.Fatalf("LoadStatements: %v", err)
	}
	if len(got) != 2 || got[1] != "SELECT 2" {
		t.Errorf("unexpected statements %q", got)
	}

	empty := filepath.Join(dir, "empty.sql")
	_ = os.WriteFile(empty, []byte(" ;\n"), 0o644)
	if _, err := LoadStatements(empty); !errors.Is(err, domain.ErrNoStatements) {
		t.Errorf("expected ErrNoStatements, got %v", err)
	}

	if _, err := LoadStatements(filepath.Join(dir, "missing.sql")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist, got %v", err)
	}
}

func TestTablePrinter_Print(t *testing.T) {
	tb := shareddomain.NewTable(
		shareddomain.Column{Name: "name", Type: shareddomain.ColumnText},
		shareddomain.Column{Name: "rate", Type: shareddomain.ColumnFloat},
		shareddomain.Column{Name: "day", Type: shareddomain.ColumnDate},
	)
	_ = tb.AppendRow("Qantas", 53.85, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	_ = tb.AppendRow(nil, nil, nil)
	_ = tb.AppendRow("Hidden", 1.0, nil)

	var buf bytes.Buffer
	NewTablePrinter(&buf).Print(tb, 2)

	out := buf.String()
	for _, want := range []string{"name", "Qantas", "53.85", "2023-01-01", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hidden") {
		t.Errorf("rows past the limit must not be printed:\n%s", out)
	}
}
