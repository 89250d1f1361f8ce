// SPDX-License-Identifier: MIT

// Package config loads layer geometry for host tools from a YAML file.
package config

import (
	"os"

	"github.com/katalvlaran/gridmap/layer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultResolution is used when the file leaves resolution unset.
const DefaultResolution = 1.0

// Config is the root of a gridmap YAML file.
type Config struct {
	Layer LayerConfig `yaml:"layer"`
}

// LayerConfig mirrors the arguments of layer.New plus its options.
// A missing Resolution means DefaultResolution; an explicit value, zero
// included, is passed through. Zero or missing MaxCells and ValidateNaNInf
// keep the layer defaults.
type LayerConfig struct {
	Width          float64  `yaml:"width"`
	Height         float64  `yaml:"height"`
	CenterX        float64  `yaml:"center_x"`
	CenterY        float64  `yaml:"center_y"`
	Resolution     *float64 `yaml:"resolution,omitempty"`
	ValidateNaNInf *bool    `yaml:"validate_nan_inf,omitempty"`
	MaxCells       int      `yaml:"max_cells,omitempty"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to load config file %s", path)
	}

	return cfg, nil
}

// Parse decodes YAML and fills defaults. Geometry is validated by NewLayer,
// so a bad width or resolution surfaces as layer.ErrInvalidGeometry.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "Unable to parse YAML")
	}
	if cfg.Layer.Resolution == nil {
		res := DefaultResolution
		cfg.Layer.Resolution = &res
	}
	if cfg.Layer.MaxCells < 0 {
		return nil, errors.Errorf("max_cells must not be negative, got %d", cfg.Layer.MaxCells)
	}

	return &cfg, nil
}

// Options translates the optional fields into layer options.
func (c LayerConfig) Options() []layer.Option {
	var opts []layer.Option
	if c.ValidateNaNInf != nil {
		opts = append(opts, layer.WithValidateNaNInf(*c.ValidateNaNInf))
	}
	if c.MaxCells > 0 {
		opts = append(opts, layer.WithMaxCells(c.MaxCells))
	}

	return opts
}

// ResolutionOrDefault returns Resolution, or DefaultResolution when unset.
func (c LayerConfig) ResolutionOrDefault() float64 {
	if c.Resolution == nil {
		return DefaultResolution
	}

	return *c.Resolution
}

// NewLayer creates the layer described by c.
func (c LayerConfig) NewLayer() (*layer.Layer, error) {
	l, err := layer.New(c.Width, c.Height, c.CenterX, c.CenterY, c.ResolutionOrDefault(), c.Options()...)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create layer from config")
	}

	return l, nil
}
