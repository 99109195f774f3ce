// Package config loads and validates application configuration from
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backends selectable with STORE.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds all configuration values for the API server.
// Values are populated by Load; environment variables win over the config file.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Store selects the persistence backend: "postgres" (default) or "mongo".
	Store string

	// DatabaseURL is the Postgres connection string. Required when Store is postgres.
	DatabaseURL string

	// MongoURI and MongoDatabase locate the document store. MongoURI is
	// required when Store is mongo; MongoDatabase defaults to "travelpal".
	MongoURI      string
	MongoDatabase string

	// JWTSecret is the HS256 key used to verify Bearer tokens. Required.
	JWTSecret string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SummaryConcurrency bounds how many trip summaries the list endpoint
	// computes in parallel. Defaults to 8.
	SummaryConcurrency int
}

// keys maps each viper key to its environment variable.
var keys = map[string]string{
	"port":                "PORT",
	"log_level":           "LOG_LEVEL",
	"cors_origins":        "CORS_ORIGINS",
	"store":               "STORE",
	"database_url":        "DATABASE_URL",
	"mongo_uri":           "MONGO_URI",
	"mongo_database":      "MONGO_DATABASE",
	"jwt_secret":          "JWT_SECRET",
	"max_body_bytes":      "MAX_BODY_BYTES",
	"summary_concurrency": "SUMMARY_CONCURRENCY",
}

// Load reads configuration and returns a Config.
// If CONFIG_FILE names a YAML file it is read first; environment variables
// override it. Empty environment variables count as unset.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("store", StorePostgres)
	v.SetDefault("mongo_database", "travelpal")
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("summary_concurrency", 8)

	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}
	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return Config{}, fmt.Errorf("config: bind CONFIG_FILE: %w", err)
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:               v.GetString("port"),
		LogLevel:           v.GetString("log_level"),
		CORSOrigins:        splitCSV(v.GetString("cors_origins")),
		Store:              strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		DatabaseURL:        v.GetString("database_url"),
		MongoURI:           v.GetString("mongo_uri"),
		MongoDatabase:      v.GetString("mongo_database"),
		JWTSecret:          v.GetString("jwt_secret"),
		MaxBodyBytes:       v.GetInt64("max_body_bytes"),
		SummaryConcurrency: v.GetInt("summary_concurrency"),
	}

	var missing []string
	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		return Config{}, fmt.Errorf("config: STORE must be %q or %q, got %q", StorePostgres, StoreMongo, cfg.Store)
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.SummaryConcurrency < 1 {
		return Config{}, fmt.Errorf("config: SUMMARY_CONCURRENCY must be at least 1, got %d", cfg.SummaryConcurrency)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
