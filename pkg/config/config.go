// Package config reads service configuration from environment variables,
// optionally overlaid from a local .env file, via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config groups the service configuration.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Log     LogConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string

	// DisableLatency turns off the simulated per-operation delays. Useful
	// for local smoke tests; the delays are on by default to mirror the
	// production pacing.
	DisableLatency bool
}

// HTTPConfig listen address of the HTTP server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Backend is one of memory, file, or postgres.
	Backend string

	// FilePath is the JSON document location for the file backend.
	FilePath string

	// DatabaseURL is the Postgres DSN for the postgres backend.
	DatabaseURL string
}

// Validate checks that the selected backend has what it needs.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("storage backend %q requires STORAGE_FILE_PATH", c.Backend)
		}
		return nil
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("storage backend %q requires DATABASE_URL", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}

// LogConfig logger settings.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// Load reads configuration from environment variables and, if present, a
// local .env file. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // a missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "e-ticketing"),
			DisableLatency: v.GetBool("APP_DISABLE_LATENCY"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend:     getString(v, "STORAGE_BACKEND", BackendMemory),
			FilePath:    getString(v, "STORAGE_FILE_PATH", "eticket-store.json"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
