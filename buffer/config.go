package buffer

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/streambuf/errors"
)

// Config describes a buffer declaratively, for wiring buffers from
// configuration files instead of code. All fields are fixed at
// construction; a buffer is never reconfigured in place.
type Config struct {
	Capacity   int `yaml:"capacity" json:"capacity"`                           // Ring buffer capacity in elements
	ExtentSize int `yaml:"extent_size,omitempty" json:"extent_size,omitempty"` // Dynamic buffer per-extent capacity (default 4096)
	MinFree    int `yaml:"min_free,omitempty" json:"min_free,omitempty"`       // Growth low-water mark (default half an extent)
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return errors.WrapInvalid(errors.ErrInvalidCapacity,
			"Config", "Validate", "capacity check")
	}
	if c.ExtentSize < 0 {
		return errors.WrapInvalid(errors.ErrInvalidExtentSize,
			"Config", "Validate", "extent size check")
	}

	extentSize := c.ExtentSize
	if extentSize == 0 {
		extentSize = DefaultExtentSize
	}
	if c.MinFree < 0 || c.MinFree > extentSize {
		return errors.WrapInvalid(errors.ErrInvalidMinFree,
			"Config", "Validate", "minfree check")
	}

	return nil
}

// options converts config fields into dynamic buffer options.
func (c *Config) options() []Option[byte] {
	var opts []Option[byte]
	if c.ExtentSize > 0 {
		opts = append(opts, WithExtentSize[byte](c.ExtentSize))
	}
	if c.MinFree > 0 {
		opts = append(opts, WithMinFree[byte](c.MinFree))
	}
	return opts
}

// ParseConfig parses a YAML buffer configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "Config", "ParseConfig", "YAML parse")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig reads and parses a YAML buffer configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Config", "LoadConfig", "file read")
	}

	return ParseConfig(data)
}

// NewCircularFromConfig builds a byte ring buffer from a validated config.
func NewCircularFromConfig(cfg *Config, options ...Option[byte]) (*CircularBuffer[byte], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewCircular(cfg.Capacity, options...)
}

// NewDynamicFromConfig builds a byte dynamic buffer from a validated config.
func NewDynamicFromConfig(cfg *Config, options ...Option[byte]) (*DynamicBuffer[byte], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewDynamic(append(cfg.options(), options...)...)
}
