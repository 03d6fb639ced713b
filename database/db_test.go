package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"otpreport/internal/config"
)

func TestDialect_Rebind(t *testing.T) {
	query := `INSERT INTO t (a, b, c) VALUES ($1, $2, $3)`

	if got := DialectPostgres.Rebind(query); got != query {
		t.Errorf("postgres should keep numbered placeholders, got %q", got)
	}
	for _, d := range []Dialect{DialectMySQL, DialectSQLite} {
		if got := d.Rebind(query); got != `INSERT INTO t (a, b, c) VALUES (?, ?, ?)` {
			t.Errorf("%s: unexpected rebind %q", d, got)
		}
	}
}

func TestDSN(t *testing.T) {
	pg := config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5433, User: "u", Password: "p", Name: "otp", SSLMode: "disable"}
	if got := DSN(pg); got != "host=db port=5433 user=u password=p dbname=otp sslmode=disable" {
		t.Errorf("postgres dsn: %q", got)
	}

	my := config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", Name: "otp"}
	got := DSN(my)
	if !strings.HasPrefix(got, "u:p@tcp(db:3306)/otp") || !strings.Contains(got, "parseTime=true") {
		t.Errorf("mysql dsn: %q", got)
	}

	explicit := config.DatabaseConfig{Driver: "pgx", DSN: "postgres://x"}
	if DSN(explicit) != "postgres://x" {
		t.Errorf("explicit dsn must win")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestSeedDatabase_SQLite(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, config.DatabaseConfig{Driver: "sqlite", Name: filepath.Join(t.TempDir(), "otp.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	opts := DefaultSeedOptions()
	opts.Months = 3
	ds, err := SeedDatabase(ctx, h, opts)
	if err != nil {
		t.Fatalf("SeedDatabase: %v", err)
	}

	var facts, months int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM facts_otp`).Scan(&facts); err != nil {
		t.Fatal(err)
	}
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM calendar_months`).Scan(&months); err != nil {
		t.Fatal(err)
	}
	if facts != len(ds.Facts) || months != 3 {
		t.Errorf("got %d facts / %d months, want %d / 3", facts, months, len(ds.Facts))
	}
}

func TestGenerateDataset_Deterministic(t *testing.T) {
	a := GenerateDataset(DefaultSeedOptions())
	b := GenerateDataset(DefaultSeedOptions())

	if len(a.Facts) != len(b.Facts) {
		t.Fatalf("fact counts differ: %d vs %d", len(a.Facts), len(b.Facts))
	}
	for i := range a.Facts {
		if a.Facts[i] != b.Facts[i] {
			t.Fatalf("fact %d differs: %+v vs %+v", i, a.Facts[i], b.Facts[i])
		}
	}

	last := a.Airlines[len(a.Airlines)-1]
	if last.Name != AllAirlinesName {
		t.Errorf("expected the aggregate airline last, got %q", last.Name)
	}
}
