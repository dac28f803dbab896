package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Data backends
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the process configuration, read from the environment
type Config struct {
	GRPCAddr string
	HTTPAddr string

	DataBackend    string
	DBConnStr      string
	RunMigrations  bool
	SeedCategories bool

	// RefreshSchedule is a cron spec for reloading the state; empty disables it
	RefreshSchedule string

	BreakerEnabled     bool
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	LogLevel  string
	LogFormat string
	LogDev    bool
}

// Load reads a .env file when present, then the environment.
// It reports whether a .env file was loaded so the caller can log it.
// Malformed values are reported together with the Validate problems.
func Load(envFiles ...string) (*Config, bool, error) {
	loaded := godotenv.Load(envFiles...) == nil

	env := &envReader{}
	cfg := &Config{
		GRPCAddr:           getEnv("GRPC_ADDR", ":8080"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":9090"),
		DataBackend:        strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		DBConnStr:          dbConnectionString(),
		RunMigrations:      env.asBool("RUN_MIGRATIONS", true),
		SeedCategories:     env.asBool("SEED_CATEGORIES", true),
		RefreshSchedule:    getEnv("REFRESH_SCHEDULE", ""),
		BreakerEnabled:     env.asBool("BREAKER_ENABLED", true),
		BreakerMaxFailures: env.asUint32("BREAKER_MAX_FAILURES", 5),
		BreakerOpenTimeout: env.asDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		LogDev:             env.asBool("LOG_DEV", false),
	}

	if err := errors.Join(append(env.errs, cfg.Validate())...); err != nil {
		return nil, loaded, err
	}
	return cfg, loaded, nil
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs []error

	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("GRPC_ADDR must not be empty"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DBConnStr == "" {
			errs = append(errs, errors.New("DB_CONN_STR must not be empty for the postgres backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("DATA_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.DataBackend))
	}

	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Errorf("REFRESH_SCHEDULE is not a valid cron spec: %w", err))
		}
	}

	if c.BreakerEnabled {
		if c.BreakerMaxFailures == 0 {
			errs = append(errs, errors.New("BREAKER_MAX_FAILURES must be positive"))
		}
		if c.BreakerOpenTimeout <= 0 {
			errs = append(errs, errors.New("BREAKER_OPEN_TIMEOUT must be positive"))
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// dbConnectionString prefers DB_CONN_STR and otherwise builds it from the
// individual DB_* variables (Docker friendly)
func dbConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "finance")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// envReader parses typed values and keeps every parse error
type envReader struct {
	errs []error
}

func (r *envReader) asUint32(key string, fallback uint32) uint32 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an unsigned 32-bit integer, got %q", key, valueStr))
		return fallback
	}
	return uint32(value)
}

func (r *envReader) asBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a boolean, got %q", key, valueStr))
		return fallback
	}
	return value
}

func (r *envReader) asDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a duration such as 30s, got %q", key, valueStr))
		return fallback
	}
	return value
}
