package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	NetworkFile string `validate:"required"`
	StartFile   string `validate:"required"`
	TargetFile  string `validate:"required"`

	DatabaseURL string
	NetworkName string

	NATSURL           string
	NATSSubjectPrefix string `validate:"required"`
	LogNATSSubjects   bool

	MetricsTextfile string
	OutputFormat    string `validate:"oneof=text json yaml"`
	Workers         int    `validate:"gt=0"`

	LogJSON bool
	Debug   bool
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Default input files when no positional arguments are given
	cfg.NetworkFile = getenvDefault("NETWORK_FILE", "fileGraph.txt")
	cfg.StartFile = getenvDefault("START_FILE", "start.txt")
	cfg.TargetFile = getenvDefault("TARGET_FILE", "target.txt")

	// Database URL for the optional Postgres network source: prefer DATABASE_URL / PG_DSN, else build from PG* vars
	dsn := firstNonEmpty(
		os.Getenv("DATABASE_URL"),
		os.Getenv("PG_DSN"),
	)
	if dsn == "" {
		if db := os.Getenv("PGDATABASE"); db != "" || os.Getenv("NETWORK_NAME") != "" {
			if db == "" {
				db = "postgres"
			}
			host := getenvDefault("PGHOST", "127.0.0.1")
			port := getenvDefault("PGPORT", "5432")
			user := getenvDefault("PGUSER", "postgres")
			pass := os.Getenv("PGPASSWORD")
			sslmode := getenvDefault("PGSSLMODE", "disable")
			if pass != "" {
				cfg.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode)
			} else {
				cfg.DatabaseURL = fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode)
			}
		}
	} else {
		cfg.DatabaseURL = dsn
	}

	// Network name for resolving the latest imported network database
	cfg.NetworkName = strings.TrimSpace(os.Getenv("NETWORK_NAME"))

	// Empty NATS_URL disables itinerary publishing
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubjectPrefix = getenvDefault("NATS_SUBJECT_PREFIX", "itineraries")
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	// Prometheus textfile collector output; empty disables metrics
	cfg.MetricsTextfile = os.Getenv("METRICS_TEXTFILE")

	cfg.OutputFormat = strings.ToLower(getenvDefault("OUTPUT_FORMAT", "text"))

	// Batch concurrency
	if v := os.Getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid WORKERS: %q", v)
		}
		cfg.Workers = n
	} else {
		cfg.Workers = runtime.NumCPU()
	}

	cfg.LogJSON = os.Getenv("PATHFINDER_LOG_FORMAT") == "JSON"
	cfg.Debug = os.Getenv("PATHFINDER_DEBUG") == "YES"

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
