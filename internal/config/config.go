// Package config reads runtime settings from the environment. A .env file is
// picked up automatically by the binary; others can be loaded with LoadEnvFile.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the render hosts need.
type Config struct {
	Port           string
	Mode           string // gin mode: debug, release or test
	ContentPath    string
	StaticDir      string
	CardInterval   time.Duration // auto-advance on project cards; 0 is off
	DetailInterval time.Duration // auto-advance in the project modal; 0 is off
	MountTTL       time.Duration
	MaxCarousels   int // live carousel cap across all clients; 0 is unlimited
	AdminToken     string
}

// Defaults for development.
const (
	DefaultPort           = "8080"
	DefaultStaticDir      = "./public"
	DefaultCardInterval   = 3 * time.Second
	DefaultDetailInterval = 4 * time.Second
	DefaultMountTTL       = 10 * time.Minute
	DefaultMaxCarousels   = 1000
)

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", DefaultPort),
		Mode:        get("GIN_MODE", ""),
		ContentPath: get("FOLIO_CONTENT", ""),
		StaticDir:   get("FOLIO_STATIC_DIR", DefaultStaticDir),
		AdminToken:  get("FOLIO_ADMIN_TOKEN", ""),
	}

	var err error
	if cfg.CardInterval, err = interval(get("FOLIO_CARD_INTERVAL", ""), DefaultCardInterval); err != nil {
		return nil, fmt.Errorf("FOLIO_CARD_INTERVAL: %w", err)
	}
	if cfg.DetailInterval, err = interval(get("FOLIO_DETAIL_INTERVAL", ""), DefaultDetailInterval); err != nil {
		return nil, fmt.Errorf("FOLIO_DETAIL_INTERVAL: %w", err)
	}

	cfg.MountTTL = DefaultMountTTL
	if v := get("FOLIO_MOUNT_TTL", ""); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FOLIO_MOUNT_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("FOLIO_MOUNT_TTL: must be positive, got %s", ttl)
		}
		cfg.MountTTL = ttl
	}

	cfg.MaxCarousels = DefaultMaxCarousels
	if v := get("FOLIO_MAX_CAROUSELS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FOLIO_MAX_CAROUSELS: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("FOLIO_MAX_CAROUSELS: must not be negative, got %d", n)
		}
		cfg.MaxCarousels = n
	}

	switch cfg.Mode {
	case "", "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE: unknown mode %q", cfg.Mode)
	}
	return cfg, nil
}

// interval parses an auto-advance period. "off" and "0" disable it.
func interval(v string, def time.Duration) (time.Duration, error) {
	switch strings.ToLower(v) {
	case "":
		return def, nil
	case "off", "0", "false", "none":
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", d)
	}
	return d, nil
}

// Addr is the listen address for the web host.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadEnvFile loads variables from path into the process environment without
// overriding ones already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
