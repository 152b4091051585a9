package config

import (
	"fmt"

	"github.com/kbukum/inject/logger"
	"github.com/kbukum/inject/observability"
	"github.com/kbukum/inject/validation"
)

// Config is the configuration of an application built around an injector
// tree. Applications embed it in their own config structs.
//
// Example:
//
//	type AppConfig struct {
//	    config.Config `yaml:",inline" mapstructure:",squash"`
//	    Listen ListenConfig `yaml:"listen" mapstructure:"listen"`
//	}
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Inject      InjectConfig  `yaml:"inject" mapstructure:"inject"`

	// Telemetry configures OTLP export when inject.tracing or inject.metrics
	// is set.
	Telemetry observability.TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// InjectConfig toggles optional injector behaviour.
type InjectConfig struct {
	// ValidateInstances validates injected struct instances carrying
	// validate tags.
	ValidateInstances bool `yaml:"validate_instances" mapstructure:"validate_instances"`
	// Tracing opens a span around every public resolution.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
	// Metrics records resolution counters and durations.
	Metrics bool `yaml:"metrics" mapstructure:"metrics"`
	// Bindings is an optional file whose keys are bound as named primitives.
	Bindings string `yaml:"bindings" mapstructure:"bindings"`
}

// GetConfig returns the base Config. When embedded, this method is promoted
// so the embedding struct can be handed to helpers taking *Config.
func (c *Config) GetConfig() *Config {
	return c
}

// ApplyDefaults applies default values.
// Override this in embedding structs and call c.Config.ApplyDefaults() first.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate the name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	defaults := observability.DefaultTelemetryConfig(c.Name)
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = defaults.Endpoint
		c.Telemetry.Insecure = defaults.Insecure
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = defaults.SampleRate
	}
	if c.Telemetry.MetricInterval == 0 {
		c.Telemetry.MetricInterval = defaults.MetricInterval
	}
}

// Validate validates the configuration.
// Override this in embedding structs and call c.Config.Validate() first.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
