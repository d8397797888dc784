package config

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/philipparndt/gospatial/pkg/quadtree"
)

// Prefix is prepended to every environment variable
const Prefix = "GOSPATIAL"

// ErrTypeConfig marks an invalid configuration
const ErrTypeConfig = "config"

type Config struct {
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogIndent      bool          `envconfig:"LOG_INDENT" default:"false"`
	MaxListLen     int           `envconfig:"MAX_LIST_LEN" default:"20"`
	MaxDepth       int           `envconfig:"MAX_DEPTH" default:"8"`
	DynamicDepth   bool          `envconfig:"DYNAMIC_DEPTH" default:"false"`
	ViewportWidth  float64       `envconfig:"VIEWPORT_WIDTH" default:"1024"`
	ViewportHeight float64       `envconfig:"VIEWPORT_HEIGHT" default:"768"`
	WatchDebounce  time.Duration `envconfig:"WATCH_DEBOUNCE" default:"300ms"`
	OpenSCADPath   string        `envconfig:"OPENSCAD_PATH" default:"openscad"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.New("loading configuration failed").
			WithType(ErrTypeConfig).
			Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that envconfig can parse but the tools cannot use
func (c *Config) Validate() error {
	switch {
	case c.MaxListLen < 1:
		return errors.Newf("max list length must be positive, got %d", c.MaxListLen).WithType(ErrTypeConfig)
	case c.MaxDepth < 0:
		return errors.Newf("max depth must not be negative, got %d", c.MaxDepth).WithType(ErrTypeConfig)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return errors.Newf("viewport must have a positive size, got %vx%v", c.ViewportWidth, c.ViewportHeight).
			WithType(ErrTypeConfig)
	case c.WatchDebounce < 0:
		return errors.Newf("watch debounce must not be negative, got %v", c.WatchDebounce).WithType(ErrTypeConfig)
	}
	return nil
}

// SplitPolicy returns the quadtree split policy the configuration selects
func (c *Config) SplitPolicy() quadtree.SplitPolicy {
	if c.DynamicDepth {
		return quadtree.DynamicDepth()
	}
	return quadtree.FixedDepth(c.MaxListLen, c.MaxDepth)
}
