// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading. Values come
// from built-in defaults, an optional YAML file named by BLOGSQUARE_CONFIG,
// and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnvVar names the environment variable holding the YAML config path.
const FileEnvVar = "BLOGSQUARE_CONFIG"

// Theme storage backends.
const (
	ThemeStoreCookie = "cookie"
	ThemeStoreValkey = "valkey"
)

// Config holds all application configuration values. Keys in the YAML
// file and environment use the same names, e.g. app_port / APP_PORT.
type Config struct {
	// Server settings
	Host string `koanf:"app_host"`
	Port string `koanf:"app_port"`
	Env  string `koanf:"app_env"` // "development", "production", "testing"

	// PostgreSQL connection. An empty host disables the database and the
	// built-in categories are used instead.
	DBHost     string `koanf:"postgres_host"`
	DBPort     string `koanf:"postgres_port"`
	DBUser     string `koanf:"postgres_user"`
	DBPassword string `koanf:"postgres_password"`
	DBName     string `koanf:"postgres_db"`

	// Valkey (Redis-compatible cache). An empty host disables the page
	// cache and server-side theme storage.
	ValkeyHost     string `koanf:"valkey_host"`
	ValkeyPort     string `koanf:"valkey_port"`
	ValkeyPassword string `koanf:"valkey_password"`

	// ThemeStore selects where theme preferences persist: "cookie" or "valkey".
	ThemeStore string `koanf:"theme_store"`

	CarouselInterval   time.Duration `koanf:"carousel_interval"`
	CarouselTransition time.Duration `koanf:"carousel_transition"`

	ContactLatency    time.Duration `koanf:"contact_latency"`
	ContactResetAfter time.Duration `koanf:"contact_reset_after"`
	// ContactRateLimit is the number of submissions allowed per client per minute.
	ContactRateLimit int `koanf:"contact_rate_limit"`

	GlobeEnabled bool          `koanf:"globe_enabled"`
	PageCacheTTL time.Duration `koanf:"page_cache_ttl"`
}

// knownKeys is the set of environment variables Load reads, lowercased.
var knownKeys = map[string]bool{
	"app_host": true, "app_port": true, "app_env": true,
	"postgres_host": true, "postgres_port": true, "postgres_user": true,
	"postgres_password": true, "postgres_db": true,
	"valkey_host": true, "valkey_port": true, "valkey_password": true,
	"theme_store":       true,
	"carousel_interval": true, "carousel_transition": true,
	"contact_latency": true, "contact_reset_after": true, "contact_rate_limit": true,
	"globe_enabled": true, "page_cache_ttl": true,
}

// clearableKeys may be set to an empty value to switch a service off.
var clearableKeys = map[string]bool{"postgres_host": true, "valkey_host": true}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: "8080",
		Env:  "development",

		DBPort:     "5432",
		DBUser:     "blogsquare",
		DBPassword: "changeme",
		DBName:     "blogsquare",

		ValkeyHost: "localhost",
		ValkeyPort: "6379",

		ThemeStore: ThemeStoreCookie,

		CarouselInterval:   5 * time.Second,
		CarouselTransition: 700 * time.Millisecond,
		ContactLatency:     1 * time.Second,
		ContactResetAfter:  3 * time.Second,
		ContactRateLimit:   5,

		GlobeEnabled: true,
		PageCacheTTL: 5 * time.Minute,
	}
}

// Load reads the configuration file named by BLOGSQUARE_CONFIG (if any)
// and environment overrides on top of the defaults. Returns an error if
// a value is invalid or critical values are missing in production mode.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(FileEnvVar))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Defaults()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	// Empty variables count as unset so they never clobber a default,
	// except the hosts, where empty disables the service.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		if !knownKeys[key] || (value == "" && !clearableKeys[key]) {
			return "", nil
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and production requirements.
func (c *Config) Validate() error {
	if c.ThemeStore != ThemeStoreCookie && c.ThemeStore != ThemeStoreValkey {
		return fmt.Errorf("invalid THEME_STORE %q: must be cookie or valkey", c.ThemeStore)
	}
	if c.ThemeStore == ThemeStoreValkey && c.ValkeyHost == "" {
		return fmt.Errorf("THEME_STORE=valkey requires VALKEY_HOST")
	}
	if c.CarouselInterval <= 0 || c.CarouselTransition <= 0 {
		return fmt.Errorf("carousel durations must be positive")
	}
	if c.CarouselTransition >= c.CarouselInterval {
		return fmt.Errorf("CAROUSEL_TRANSITION (%s) must be shorter than CAROUSEL_INTERVAL (%s)",
			c.CarouselTransition, c.CarouselInterval)
	}
	if c.ContactLatency <= 0 || c.ContactResetAfter <= 0 {
		return fmt.Errorf("contact durations must be positive")
	}
	if c.ContactRateLimit < 1 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be at least 1")
	}

	if c.Env == "production" && c.DBEnabled() && c.DBPassword == "changeme" {
		return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// DBEnabled reports whether a PostgreSQL host is configured.
func (c *Config) DBEnabled() bool {
	return c.DBHost != ""
}

// ValkeyEnabled reports whether a Valkey host is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
