package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the effective configuration.
const (
	DefaultEndpointURL = "https://api.example.com/welcome"
	DefaultTimeout     = 5 * time.Second
	DefaultCacheTTL    = 30 * time.Second
)

// Environment variable names read by FromEnv.
const (
	EnvEndpointURL = "WELCOME_URL"
	EnvTimeoutMS   = "WELCOME_TIMEOUT_MS"
	EnvCacheTTLMS  = "WELCOME_TTL_MS"
)

// Config is the effective configuration of a welcome service. It is
// assembled once at construction time; the service never re-reads the
// environment itself.
type Config struct {
	EndpointURL string        `yaml:"endpoint_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		EndpointURL: DefaultEndpointURL,
		Timeout:     DefaultTimeout,
		CacheTTL:    DefaultCacheTTL,
	}
}

// Merge returns cfg with any zero-valued field replaced by the default.
func (c Config) Merge() Config {
	out := c
	if out.EndpointURL == "" {
		out.EndpointURL = DefaultEndpointURL
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.CacheTTL <= 0 {
		out.CacheTTL = DefaultCacheTTL
	}
	return out
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults. Durations are given in milliseconds; malformed values fall
// back rather than erroring.
func FromEnv() Config {
	cfg := DefaultConfig()

	if url := os.Getenv(EnvEndpointURL); url != "" {
		cfg.EndpointURL = url
	}
	cfg.Timeout = envMillis(EnvTimeoutMS, cfg.Timeout)
	cfg.CacheTTL = envMillis(EnvCacheTTLMS, cfg.CacheTTL)

	return cfg
}

func envMillis(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadFile reads a YAML config file and merges it over the defaults.
// Fields absent from the file keep their default values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Merge(), nil
}
