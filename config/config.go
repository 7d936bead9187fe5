package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the dashboard API configuration, read from the environment
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Telemetry     TelemetryConfig
	Observability ObservabilityConfig
	Environment   string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig locates the PostgreSQL database. A hosted DATABASE_URL
// lands in ConnectionString and wins over the discrete fields.
type DatabaseConfig struct {
	ConnectionString string
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// AuthConfig holds settings for validating access tokens issued by the
// managed identity service and for caching role lookups.
type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	Audience      string
	RoleCacheTTL  time.Duration
	RoleCacheSize int
}

// TelemetryConfig controls the simulated plant telemetry monitor
type TelemetryConfig struct {
	Enabled     bool
	Schedule    string // cron spec, e.g. "@every 2s"
	HistorySize int
	AlertLimit  int
	Persist     bool   // write samples to wte_monitoring_data
	SiteID      string // optional wte_sites.id attached to persisted samples
	Seed        int64  // 0 picks a time-based seed
}

type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console
	MetricsEnabled bool
}

// New reads the configuration from the environment, after loading a .env
// file from backend/ or the working directory when one exists.
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load("backend/.env")
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: envOr("ENVIRONMENT", "development", asString),
		Server: ServerConfig{
			Host:            envOr("SERVER_HOST", "0.0.0.0", asString),
			Port:            envOr("PORT", envOr("SERVER_PORT", 8080, strconv.Atoi), strconv.Atoi),
			ReadTimeout:     envOr("SERVER_READ_TIMEOUT", 30*time.Second, time.ParseDuration),
			WriteTimeout:    envOr("SERVER_WRITE_TIMEOUT", 30*time.Second, time.ParseDuration),
			ShutdownTimeout: envOr("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second, time.ParseDuration),
			AllowedOrigins:  envOr("CORS_ALLOWED_ORIGINS", []string{"http://localhost:*", "https://*"}, asList),
		},
		Database: loadDatabaseConfig(),
		Auth: AuthConfig{
			JWTSecret:     envOr("AUTH_JWT_SECRET", "", asString),
			Issuer:        envOr("AUTH_JWT_ISSUER", "", asString),
			Audience:      envOr("AUTH_JWT_AUDIENCE", "authenticated", asString),
			RoleCacheTTL:  envOr("AUTH_ROLE_CACHE_TTL", time.Minute, time.ParseDuration),
			RoleCacheSize: envOr("AUTH_ROLE_CACHE_SIZE", 1000, strconv.Atoi),
		},
		Telemetry: TelemetryConfig{
			Enabled:     envOr("TELEMETRY_ENABLED", true, strconv.ParseBool),
			Schedule:    envOr("TELEMETRY_SCHEDULE", "@every 2s", asString),
			HistorySize: envOr("TELEMETRY_HISTORY_SIZE", 20, strconv.Atoi),
			AlertLimit:  envOr("TELEMETRY_ALERT_LIMIT", 10, strconv.Atoi),
			Persist:     envOr("TELEMETRY_PERSIST", false, strconv.ParseBool),
			SiteID:      envOr("TELEMETRY_SITE_ID", "", asString),
			Seed:        envOr("TELEMETRY_SEED", int64(0), asInt64),
		},
		Observability: ObservabilityConfig{
			LogLevel:       envOr("LOG_LEVEL", "info", asString),
			LogFormat:      envOr("LOG_FORMAT", "json", asString),
			MetricsEnabled: envOr("METRICS_ENABLED", true, strconv.ParseBool),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the API cannot start with
func (c *Config) Validate() error {
	db := c.Database
	switch {
	case db.ConnectionString != "":
	case db.Host == "":
		return errors.New("database configuration required: set DATABASE_URL or DB_HOST")
	case db.User == "":
		return errors.New("database user is required")
	case db.Database == "":
		return errors.New("database name is required")
	}

	// token verification cannot be skipped in production
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return errors.New("auth JWT secret is required in production")
	}

	if t := c.Telemetry; t.Enabled {
		if t.HistorySize <= 0 {
			return errors.New("telemetry history size must be positive")
		}
		if t.AlertLimit <= 0 {
			return errors.New("telemetry alert limit must be positive")
		}
	}

	if c.Observability.LogLevel == "" {
		return errors.New("log level is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// DSN returns the connection string handed to lib/pq
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// LogString describes the database without credentials
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString == "" {
		return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
	}
	u, err := url.Parse(c.ConnectionString)
	if err != nil {
		return "host=<from DATABASE_URL>"
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s database=%s", u.Hostname(), port, strings.TrimPrefix(u.Path, "/"))
}

func loadDatabaseConfig() DatabaseConfig {
	db := DatabaseConfig{
		MaxOpenConns:    envOr("DB_MAX_OPEN_CONNS", 25, strconv.Atoi),
		MaxIdleConns:    envOr("DB_MAX_IDLE_CONNS", 5, strconv.Atoi),
		ConnMaxLifetime: envOr("DB_CONN_MAX_LIFETIME", 5*time.Minute, time.ParseDuration),
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db.ConnectionString = dbURL
		return db
	}
	db.Host = envOr("DB_HOST", "localhost", asString)
	db.Port = envOr("DB_PORT", 5432, strconv.Atoi)
	db.User = envOr("DB_USER", "postgres", asString)
	db.Password = envOr("DB_PASSWORD", "postgres", asString)
	db.Database = envOr("DB_NAME", "wte", asString)
	db.SSLMode = envOr("DB_SSLMODE", "disable", asString)
	return db
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// envOr parses the variable named key, falling back to def when it is
// unset, empty or unparseable.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func asString(s string) (string, error) { return s, nil }

func asInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// asList splits a comma-separated value, dropping blanks. An all-blank
// value is an error so the default applies.
func asList(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}
