package config

import (
	"fmt"

	"github.com/kbukum/transduce/validation"
)

const (
	DefaultPartitionInitial = 16
	DefaultPartitionFactor  = 2.0
	DefaultPartitionMax     = 4096
	DefaultTelemetryURL     = "localhost:4318"
)

// Config is the complete configuration of a transduce program.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Parallel      ParallelConfig  `yaml:"parallel" mapstructure:"parallel" json:"parallel"`
	Telemetry     TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry" json:"telemetry"`
}

// ParallelConfig sizes the parallel driver. Workers of zero means GOMAXPROCS.
type ParallelConfig struct {
	Workers   int             `yaml:"workers" mapstructure:"workers" json:"workers" validate:"gte=0"`
	Partition PartitionConfig `yaml:"partition" mapstructure:"partition" json:"partition"`
}

// PartitionConfig describes a geometric partition policy: the first
// partition holds Initial items and each following one Factor times more,
// capped at Max.
type PartitionConfig struct {
	Initial int     `yaml:"initial" mapstructure:"initial" json:"initial" validate:"gte=1"`
	Factor  float64 `yaml:"factor" mapstructure:"factor" json:"factor" validate:"gte=1"`
	Max     int     `yaml:"max" mapstructure:"max" json:"max" validate:"gtefield=Initial"`
}

// TelemetryConfig controls OTLP export of driver metrics and spans.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure" json:"insecure"`
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	p := &c.Parallel.Partition
	if p.Initial == 0 {
		p.Initial = DefaultPartitionInitial
	}
	if p.Factor == 0 {
		p.Factor = DefaultPartitionFactor
	}
	if p.Max == 0 {
		p.Max = DefaultPartitionMax
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = DefaultTelemetryURL
	}
}

// Validate validates the full configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c.Parallel); err != nil {
		return fmt.Errorf("config.parallel: %w", err)
	}
	if err := validation.Validate(c.Telemetry); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	if err := validation.New().
		Check(!c.Telemetry.Enabled || c.Telemetry.Endpoint != "", "telemetry.endpoint", "is required when telemetry is enabled").
		Err(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}
