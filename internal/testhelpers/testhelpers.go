package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"otpreport/database"
	"otpreport/internal/config"
)

// SetupTestDB ouvre une base SQLite temporaire avec le schéma OTP (vide)
func SetupTestDB(tb testing.TB) *database.Handle {
	tb.Helper()

	ctx := context.Background()
	h, err := database.Open(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		Name:   filepath.Join(tb.TempDir(), "otp_test.db"),
	})
	if err != nil {
		tb.Fatalf("Failed to open test database: %v", err)
	}
	tb.Cleanup(func() { h.Close() })

	if err := database.CreateSchema(ctx, h); err != nil {
		tb.Fatalf("Failed to create schema: %v", err)
	}

	return h
}

// SetupSeededDB base SQLite temporaire remplie avec le jeu synthétique (6 mois)
func SetupSeededDB(tb testing.TB) (*database.Handle, database.Dataset) {
	tb.Helper()

	h := SetupTestDB(tb)
	opts := database.DefaultSeedOptions()
	opts.Months = 6
	ds := database.GenerateDataset(opts)
	Load(tb, h, ds)

	return h, ds
}

// Load insère un jeu de données dans la base de test
func Load(tb testing.TB, h *database.Handle, ds database.Dataset) {
	tb.Helper()

	if err := database.InsertDataset(context.Background(), h, ds); err != nil {
		tb.Fatalf("Failed to load dataset: %v", err)
	}
}

// CountFacts nombre de lignes dans facts_otp
func CountFacts(tb testing.TB, h *database.Handle) int {
	tb.Helper()

	var n int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM facts_otp`).Scan(&n); err != nil {
		tb.Fatalf("count facts: %v", err)
	}
	return n
}

// SetupPostgres ouvre la base PostgreSQL décrite par l'environnement (.env)
func SetupPostgres(tb testing.TB) *database.Handle {
	tb.Helper()

	h, err := database.Open(context.Background(), postgresConfig())
	if err != nil {
		tb.Fatalf("Failed to open database: %v\nConnection string: %s", err, hidePassword(database.DSN(postgresConfig())))
	}
	tb.Cleanup(func() { h.Close() })

	return h
}

// SkipIfNoDatabase skip le test si PostgreSQL n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	db, err := sql.Open("postgres", database.DSN(postgresConfig()))
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("Database not available:", err)
	}
}

func postgresConfig() config.DatabaseConfig {
	_ = godotenv.Load("../../../.env")

	port := 5432
	fmt.Sscanf(getEnv("DB_PORT", "5432"), "%d", &port)

	return config.DatabaseConfig{
		Driver:   "postgres",
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "otp_analysis"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// hidePassword masque le mot de passe dans la connection string pour les logs
func hidePassword(connStr string) string {
	return "host=... (password hidden)"
}

// SmallDataset petit jeu calculable à la main:
//   - Qantas vole 19 secteurs, Jetstar 4, Ghost n'a rien programmé
//   - la ligne "All Airlines" (id 4) agrège Qantas et Jetstar sur Sydney → Melbourne
//   - Sydney → Melbourne: 14 retards / 26 volés; Melbourne → Perth: 4 / 10
func SmallDataset() database.Dataset {
	return database.Dataset{
		Airlines: []database.Airline{
			{ID: 1, Name: "Qantas"},
			{ID: 2, Name: "Jetstar"},
			{ID: 3, Name: "Ghost"},
			{ID: 4, Name: database.AllAirlinesName},
		},
		Ports: []database.Port{
			{ID: 1, Name: "Sydney"},
			{ID: 2, Name: "Melbourne"},
			{ID: 3, Name: "Perth"},
		},
		Routes: []database.Route{
			{ID: 1, OriginPortID: 1, DestPortID: 2},
			{ID: 2, OriginPortID: 2, DestPortID: 3},
		},
		Months: []database.CalendarMonth{
			{ID: 1, Year: 2023, MonthNum: 1, MonthLabel: "Jan-23"},
			{ID: 2, Year: 2023, MonthNum: 2, MonthLabel: "Feb-23"},
		},
		Facts: []database.FactOTP{
			{RouteID: 1, AirlineID: 1, CalID: 1, SectorsScheduled: 10, SectorsFlown: 9, Cancellations: 1,
				DeparturesOnTime: 7, ArrivalsOnTime: 6, DeparturesDelayed: 2, ArrivalsDelayed: 3},
			{RouteID: 2, AirlineID: 1, CalID: 2, SectorsScheduled: 10, SectorsFlown: 10, Cancellations: 0,
				DeparturesOnTime: 8, ArrivalsOnTime: 8, DeparturesDelayed: 2, ArrivalsDelayed: 2},
			{RouteID: 1, AirlineID: 2, CalID: 1, SectorsScheduled: 5, SectorsFlown: 4, Cancellations: 1,
				DeparturesOnTime: 3, ArrivalsOnTime: 3, DeparturesDelayed: 1, ArrivalsDelayed: 1},
			{RouteID: 2, AirlineID: 3, CalID: 2},
			{RouteID: 1, AirlineID: 4, CalID: 1, SectorsScheduled: 15, SectorsFlown: 13, Cancellations: 2,
				DeparturesOnTime: 10, ArrivalsOnTime: 9, DeparturesDelayed: 3, ArrivalsDelayed: 4},
		},
	}
}

// SetupSmallDB base SQLite temporaire chargée avec SmallDataset
func SetupSmallDB(tb testing.TB) *database.Handle {
	tb.Helper()

	h := SetupTestDB(tb)
	Load(tb, h, SmallDataset())
	return h
}
