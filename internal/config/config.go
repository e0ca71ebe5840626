// Package config loads shapekit's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Logging Logging `yaml:"logging"`
	Guard   Guard   `yaml:"guard"`
	Fetch   Fetch   `yaml:"fetch"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Guard holds defaults for guarded slots.
type Guard struct {
	Limit int `yaml:"limit"` // 0 = unbounded
}

// Fetch configures HTTP requests.
type Fetch struct {
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "warn", Format: "console"},
		Fetch:   Fetch{Timeout: 30 * time.Second},
	}
}

// Load reads path from fsys and overlays it on Default. A missing file is
// reported with an error wrapping fs.ErrNotExist.
func Load(fsys billy.Filesystem, path string) (*Config, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	if c.Guard.Limit < 0 {
		errs = append(errs, fmt.Errorf("guard.limit: must not be negative, got %d", c.Guard.Limit))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout: must not be negative, got %s", c.Fetch.Timeout))
	}
	return errors.Join(errs...)
}
