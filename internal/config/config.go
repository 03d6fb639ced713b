package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile est le fichier lu quand --config n'est pas fourni
const DefaultConfigFile = "otpreport.yaml"

// ErrInvalidConfig est retourné quand la validation échoue
var ErrInvalidConfig = errors.New("invalid configuration")

// Config regroupe toute la configuration du rapport
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig paramètres de connexion (jamais de mot de passe en dur)
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// OutputConfig emplacement des artefacts
type OutputConfig struct {
	ChartsDir   string `yaml:"charts_dir"`
	ExportsDir  string `yaml:"exports_dir"`
	OpenBrowser bool   `yaml:"open_browser"`
	Parquet     bool   `yaml:"parquet"`
}

// ReportConfig paramètres des graphiques et du pipeline
type ReportConfig struct {
	TopRoutes       int  `yaml:"top_routes"`
	ExportTopRoutes int  `yaml:"export_top_routes"`
	HistogramBins   int  `yaml:"histogram_bins"`
	FailFast        bool `yaml:"fail_fast"`
	SkipDemo        bool `yaml:"skip_demo"`
}

// LogConfig niveau et format des logs de diagnostic
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default retourne la configuration par défaut
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Name:         "otp_analysis",
			SSLMode:      "disable",
			MaxOpenConns: 5,
		},
		Output: OutputConfig{
			ChartsDir:   "charts",
			ExportsDir:  "exports",
			OpenBrowser: true,
		},
		Report: ReportConfig{
			TopRoutes:       10,
			ExportTopRoutes: 25,
			HistogramBins:   30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load construit la configuration: défauts, fichier YAML, .env puis variables d'environnement.
// Un chemin vide utilise DefaultConfigFile s'il existe.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// pas de fichier: on garde les défauts
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	// .env optionnel, comme dans cmd/seed
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv surcharge les champs à partir des variables d'environnement
func (c *Config) applyEnv() error {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Output.ChartsDir, "CHARTS_DIR")
	setString(&c.Output.ExportsDir, "EXPORTS_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}

	if v := os.Getenv("OTP_OPEN_BROWSER"); v != "" {
		open, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: OTP_OPEN_BROWSER=%q is not a boolean", ErrInvalidConfig, v)
		}
		c.Output.OpenBrowser = open
	}

	return nil
}

// Validate vérifie la cohérence de la configuration
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx", "mysql", "sqlite":
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.Driver == "sqlite" {
		if c.Database.Name == "" && c.Database.DSN == "" {
			return fmt.Errorf("%w: sqlite needs a database file name", ErrInvalidConfig)
		}
	} else if c.Database.DSN == "" && (c.Database.Port <= 0 || c.Database.Port > 65535) {
		return fmt.Errorf("%w: database port %d out of range", ErrInvalidConfig, c.Database.Port)
	}

	if strings.TrimSpace(c.Output.ChartsDir) == "" || strings.TrimSpace(c.Output.ExportsDir) == "" {
		return fmt.Errorf("%w: output directories cannot be empty", ErrInvalidConfig)
	}
	if c.Report.TopRoutes <= 0 || c.Report.ExportTopRoutes <= 0 {
		return fmt.Errorf("%w: route limits must be positive", ErrInvalidConfig)
	}
	if c.Report.HistogramBins <= 0 {
		return fmt.Errorf("%w: histogram bins must be positive", ErrInvalidConfig)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
