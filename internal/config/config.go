// Package config provides configuration loading for the journey planner.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration. Values come from an optional
// YAML file with environment variables taking precedence.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Providers ProvidersConfig `yaml:"providers"`
	Planning  PlanningConfig  `yaml:"planning"`
}

type ServerConfig struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	// URL is the Postgres connection string for the geocode cache.
	// Empty disables caching.
	URL string `yaml:"url"`
}

// ProvidersConfig holds per-backend credentials and endpoints. A backend is
// only registered when its credentials are present; OSRM/Nominatim need none.
type ProvidersConfig struct {
	GoogleAPIKey     string `yaml:"google_api_key"`
	MapboxToken      string `yaml:"mapbox_token"`
	AviationStackKey string `yaml:"aviationstack_key"`
	OSRMBaseURL      string `yaml:"osrm_base_url"`
	NominatimBaseURL string `yaml:"nominatim_base_url"`
}

type PlanningConfig struct {
	// DefaultProvider is used when a plan request names none.
	DefaultProvider string `yaml:"default_provider"`
	// DefaultTimezoneMode selects origin or destination display times.
	DefaultTimezoneMode string `yaml:"default_timezone_mode"`
	// AirportBufferMinutes is the fixed deplaning/baggage buffer added after
	// a flight arrival before the drive departs.
	AirportBufferMinutes int `yaml:"airport_buffer_minutes"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Providers: ProvidersConfig{
			OSRMBaseURL:      "https://router.project-osrm.org",
			NominatimBaseURL: "https://nominatim.openstreetmap.org",
		},
		Planning: PlanningConfig{
			DefaultProvider:      "osrm",
			DefaultTimezoneMode:  "destination",
			AirportBufferMinutes: 45,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	switch c.Planning.DefaultProvider {
	case "google", "mapbox", "osrm":
	default:
		return fmt.Errorf("planning.default_provider must be google, mapbox or osrm")
	}
	switch c.Planning.DefaultTimezoneMode {
	case "origin", "destination":
	default:
		return fmt.Errorf("planning.default_timezone_mode must be origin or destination")
	}
	if c.Planning.AirportBufferMinutes < 0 {
		return fmt.Errorf("planning.airport_buffer_minutes must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// path if it exists, then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadFromFile(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Providers.GoogleAPIKey, "GOOGLE_MAPS_API_KEY")
	setString(&c.Providers.MapboxToken, "MAPBOX_ACCESS_TOKEN")
	setString(&c.Providers.AviationStackKey, "AVIATIONSTACK_API_KEY")
	setString(&c.Providers.OSRMBaseURL, "OSRM_BASE_URL")
	setString(&c.Providers.NominatimBaseURL, "NOMINATIM_BASE_URL")
	setString(&c.Planning.DefaultProvider, "DEFAULT_PROVIDER")
	setString(&c.Planning.DefaultTimezoneMode, "DEFAULT_TIMEZONE_MODE")
	setInt(&c.Planning.AirportBufferMinutes, "AIRPORT_BUFFER_MINUTES")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
