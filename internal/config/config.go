// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types and validates that the
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad config.
//   - Provide sane defaults for every optional value.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: CARDS_
	- The first underscore after the prefix separates the section from the key
	  e.g. CARDS_SERVER_READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
	- Logging and New Relic sections live under observability
	  e.g. CARDS_LOGGING_LEVEL -> observability.logging.level
	- The plain variables PORT, CORS_ORIGIN, LOG_LEVEL and NODE_ENV are honoured
	  as well, but a prefixed variable always wins.
*/

// EnvPrefix is the prefix every application variable starts with.
const EnvPrefix = "CARDS_"

// ServiceName identifies this service in logs and APM dashboards.
const ServiceName = "card-collection-api"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Env switches behavior such as the detail of 500 responses.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit uses echo's size notation, e.g. "10K" or "2M".
	BodyLimit string `koanf:"body_limit" validate:"required"`

	// RateLimit is the allowed requests per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// StoreConfig controls the in-memory card store.
type StoreConfig struct {
	// Seed loads the sample deck when the store is created.
	Seed bool `koanf:"seed"`
}

// legacyKeys maps the unprefixed deployment variables to koanf keys.
var legacyKeys = map[string]string{
	"PORT":        "server.port",
	"CORS_ORIGIN": "server.cors_allowed_origins",
	"LOG_LEVEL":   "observability.logging.level",
	"NODE_ENV":    "primary.env",
}

// defaults returns the flat key/value set loaded before any env var.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                                        "development",
		"server.port":                                        "3000",
		"server.read_timeout":                                30,
		"server.write_timeout":                               30,
		"server.idle_timeout":                                60,
		"server.shutdown_timeout":                            30,
		"server.cors_allowed_origins":                        []string{"*"},
		"server.body_limit":                                  "10K",
		"server.rate_limit":                                  0,
		"store.seed":                                         true,
		"observability.logging.level":                        "info",
		"observability.logging.format":                       "",
		"observability.newrelic.license_key":                 "",
		"observability.newrelic.app_log_forwarding_enabled":  true,
		"observability.newrelic.distributed_tracing_enabled": true,
		"observability.newrelic.debug_logging":               false,
	}
}

// envKey converts a prefixed variable name into a koanf key path.
//
// Example:
//
//	CARDS_SERVER_BODY_LIMIT -> server.body_limit
//	CARDS_NEWRELIC_LICENSE_KEY -> observability.newrelic.license_key
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}

	key = section + "." + rest
	if section == "logging" || section == "newrelic" {
		key = "observability." + key
	}

	return key
}

// envValue normalizes values that are lists in the config struct.
func envValue(key, value string) interface{} {
	if key == "server.cors_allowed_origins" {
		origins := strings.Split(value, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}

	if key == "observability.logging.level" {
		return strings.ToLower(strings.TrimSpace(value))
	}

	return value
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
//
// Load order (later wins):
//   - built-in defaults
//   - plain variables (PORT, CORS_ORIGIN, LOG_LEVEL, NODE_ENV)
//   - CARDS_ prefixed variables
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// Prefix "" walks every variable; the callback drops the unknown ones
	// by returning an empty key.
	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		key, ok := legacyKeys[name]
		if !ok || value == "" {
			return "", nil
		}
		return key, envValue(key, value)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load plain env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, interface{}) {
		key := envKey(name)
		return key, envValue(key, value)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", EnvPrefix, err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces see consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
