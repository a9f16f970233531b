// Package config loads editor settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonmapper/internal/telemetry"
	"github.com/samdwyer/dungeonmapper/internal/world"
)

const (
	// DefaultFile is read from the working directory when EnvFile is unset.
	DefaultFile = "dungeonmapper.yaml"

	EnvFile      = "DUNGEONMAPPER_CONFIG"
	EnvWidth     = "DUNGEONMAPPER_WIDTH"
	EnvHeight    = "DUNGEONMAPPER_HEIGHT"
	EnvFloors    = "DUNGEONMAPPER_FLOORS"
	EnvMapDir    = "DUNGEONMAPPER_MAP_DIR"
	EnvTelemetry = "DUNGEONMAPPER_TELEMETRY"
	EnvService   = "DUNGEONMAPPER_SERVICE_NAME"
)

// Config holds editor configuration options.
type Config struct {
	// Dimensions of maps created with "new".
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Floors int `yaml:"floors"`

	// MapDir is where relative map file names are resolved.
	MapDir string `yaml:"map_dir"`

	// Telemetry enables OTLP trace export.
	Telemetry bool `yaml:"telemetry"`

	// ServiceName labels exported spans.
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:  32,
		Height: 32,
		Floors: 4,
		MapDir: ".",

		ServiceName: telemetry.DefaultServiceName,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// EnvFile (or DefaultFile if present), then environment overrides.
// An explicitly named file that does not exist is an error.
func Load() (Config, error) {
	cfg := Default()

	path, explicit := os.LookupEnv(EnvFile)
	if !explicit {
		path = DefaultFile
	}
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := decodeYAML(f, &cfg); err != nil {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("opening config: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse reads a YAML configuration on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decodeYAML(r, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from environment variables found by lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvFloors, &cfg.Floors},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvMapDir); ok && v != "" {
		cfg.MapDir = v
	}
	if v, ok := lookup(EnvService); ok && v != "" {
		cfg.ServiceName = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTelemetry); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		cfg.Telemetry = b
	}
	return nil
}

// Validate checks that new maps can be created with the configured size.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Floors <= 0 {
		return fmt.Errorf("config: %w: %dx%dx%d", world.ErrInvalidDimensions, c.Width, c.Height, c.Floors)
	}
	if c.MapDir == "" {
		return errors.New("config: map_dir must not be empty")
	}
	return nil
}
