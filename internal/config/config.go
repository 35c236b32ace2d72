// Package config loads the careergraph configuration.
//
// Sources are layered: built-in defaults, then an optional YAML file, then
// CAREERGRAPH_* environment variables. Command-line flags are applied last by
// the CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/layout"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CAREERGRAPH_"

// Config is the full runtime configuration.
type Config struct {
	// Dataset is a YAML or JSON dataset file. Empty selects the embedded dataset.
	Dataset string `mapstructure:"dataset" env:"DATASET"`
	// Achievements is a directory of achievement documents merged into the dataset.
	Achievements string `mapstructure:"achievements" env:"ACHIEVEMENTS"`

	Margins domain.Margins `mapstructure:"margins" envPrefix:"MARGIN_"`
	Log     Log            `mapstructure:"log" envPrefix:"LOG_"`
	HTTP    HTTP           `mapstructure:"http" envPrefix:"HTTP_"`
	Redis   Redis          `mapstructure:"redis" envPrefix:"REDIS_"`
	Session Session        `mapstructure:"session" envPrefix:"SESSION_"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level" env:"LEVEL"`
	Format string `mapstructure:"format" env:"FORMAT"`
}

// HTTP configures the server adapter.
type HTTP struct {
	Addr            string        `mapstructure:"addr" env:"ADDR"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Redis configures the shared layout cache. An empty address keeps the cache in memory.
type Redis struct {
	Addr   string        `mapstructure:"addr" env:"ADDR"`
	Prefix string        `mapstructure:"prefix" env:"PREFIX"`
	TTL    time.Duration `mapstructure:"ttl" env:"TTL"`
}

// Session configures live views.
type Session struct {
	QueueSize int `mapstructure:"queue_size" env:"QUEUE_SIZE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Margins: layout.DefaultMargins,
		Log:     Log{Level: "info", Format: "text"},
		HTTP:    HTTP{Addr: ":8080", ShutdownTimeout: 5 * time.Second},
		Redis:   Redis{Prefix: "careergraph:layout:", TTL: time.Hour},
		Session: Session{QueueSize: 64},
	}
}

// Load layers path (optional) and the environment over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// decode merges a YAML document into cfg. Unknown keys are errors.
func decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	m := c.Margins
	if m.Header < 0 || m.Footer < 0 || m.Left < 0 || m.Right < 0 {
		return fmt.Errorf("margins: negative value in %+v", m)
	}
	if c.Session.QueueSize < 1 {
		return fmt.Errorf("session.queue_size: must be positive, got %d", c.Session.QueueSize)
	}
	return nil
}
