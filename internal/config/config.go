package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Area resolver strategy names accepted in AreaStrategy.
const (
	StrategyCoordinates = "coordinates"
	StrategyName        = "name"
)

// Config holds all service settings.
type Config struct {
	// Feed endpoints. Defaults point at the LCSD open-data feeds.
	VenuesURL     string `koanf:"venues_url"`
	EventsURL     string `koanf:"events_url"`
	EventDatesURL string `koanf:"event_dates_url"`

	DatabaseURL string `koanf:"database_url"`

	HTTPAddr  string `koanf:"http_addr"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Ranking and selection.
	MinEvents int `koanf:"min_events"`
	TopVenues int `koanf:"top_venues"`

	// Area classification: "coordinates" or "name".
	AreaStrategy string `koanf:"area_strategy"`

	// Reference point for distance filtering (defaults to CUHK).
	ReferenceLat float64 `koanf:"reference_lat"`
	ReferenceLng float64 `koanf:"reference_lng"`
}

func defaults() *Config {
	return &Config{
		VenuesURL:       "https://www.lcsd.gov.hk/datagovhk/event/venues.xml",
		EventsURL:       "https://www.lcsd.gov.hk/datagovhk/event/events.xml",
		EventDatesURL:   "https://www.lcsd.gov.hk/datagovhk/event/eventDates.xml",
		DatabaseURL:     "postgres://localhost:5432/venue_etl",
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		LogFormat:       "json",
		FetchTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MinEvents:       3,
		TopVenues:       10,
		AreaStrategy:    StrategyCoordinates,
		ReferenceLat:    22.4172,
		ReferenceLng:    114.2079,
	}
}

// Load builds a Config by layering an optional YAML file and environment
// variables over the defaults. Order of precedence (low to high):
//
//  1. defaults
//  2. YAML file named by VENUEETL_CONFIG, if set
//  3. environment variables with prefix VENUEETL_ (VENUEETL_TOP_VENUES etc.)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("VENUEETL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// VENUEETL_MIN_EVENTS -> min_events; underscores are preserved to match
	// the koanf tags on the struct.
	envProvider := env.Provider("VENUEETL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "venueetl_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.VenuesURL == "":
		return errors.New("venues_url must not be empty")
	case c.EventsURL == "":
		return errors.New("events_url must not be empty")
	case c.EventDatesURL == "":
		return errors.New("event_dates_url must not be empty")
	case c.DatabaseURL == "":
		return errors.New("database_url must not be empty")
	case c.FetchTimeout <= 0:
		return errors.New("fetch_timeout must be positive")
	case c.ShutdownTimeout <= 0:
		return errors.New("shutdown_timeout must be positive")
	case c.MinEvents < 1:
		return errors.New("min_events must be at least 1")
	case c.TopVenues < 1:
		return errors.New("top_venues must be at least 1")
	}

	if c.AreaStrategy != StrategyCoordinates && c.AreaStrategy != StrategyName {
		return fmt.Errorf("area_strategy must be %q or %q, got %q",
			StrategyCoordinates, StrategyName, c.AreaStrategy)
	}
	return nil
}
