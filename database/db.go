package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"otpreport/internal/config"
)

// Dialect identifie la famille SQL du moteur connecté
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

var numberedPlaceholder = regexp.MustCompile(`\$\d+`)

// Rebind convertit les placeholders $1..$n vers la syntaxe du dialecte.
// Les arguments doivent apparaître dans l'ordre croissant dans la requête.
func (d Dialect) Rebind(query string) string {
	if d == DialectPostgres {
		return query
	}
	return numberedPlaceholder.ReplaceAllString(query, "?")
}

// Handle connexion explicite à la base: créée par Open, fermée par l'appelant
type Handle struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open ouvre la connexion décrite par cfg et vérifie qu'elle répond
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Handle, error) {
	driver, dialect, err := driverFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	// SQLite n'accepte qu'un écrivain à la fois
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 5
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return &Handle{DB: db, Dialect: dialect}, nil
}

// Close libère la connexion
func (h *Handle) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

// DSN construit la chaîne de connexion propre au driver
func DSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	switch cfg.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = cfg.Host + ":" + strconv.Itoa(cfg.Port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case "sqlite":
		return cfg.Name
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
}

func driverFor(name string) (string, Dialect, error) {
	switch name {
	case "postgres":
		return "postgres", DialectPostgres, nil
	case "pgx":
		return "pgx", DialectPostgres, nil
	case "mysql":
		return "mysql", DialectMySQL, nil
	case "sqlite":
		return "sqlite", DialectSQLite, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", name)
	}
}
