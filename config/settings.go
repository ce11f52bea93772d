package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/seqpipe/logger"
	"github.com/kbukum/seqpipe/observability"
	"github.com/kbukum/seqpipe/validation"
)

// Settings is the root configuration consumed by pipelines.
type Settings struct {
	Name        string            `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string            `yaml:"environment" mapstructure:"environment"`
	Logging     logger.Config     `yaml:"logging" mapstructure:"logging"`
	Pipeline    PipelineSettings  `yaml:"pipeline" mapstructure:"pipeline"`
	Telemetry   TelemetrySettings `yaml:"telemetry" mapstructure:"telemetry"`
}

// PipelineSettings tunes evaluation behaviour.
type PipelineSettings struct {
	// LogEvaluations emits one debug event per terminal operation.
	LogEvaluations bool `yaml:"log_evaluations" mapstructure:"log_evaluations"`
	// MaxBuffer bounds the elements Rev may hold. Zero means unlimited.
	MaxBuffer int `yaml:"max_buffer" mapstructure:"max_buffer" validate:"gte=0"`
}

// TelemetrySettings selects the OpenTelemetry instrumentation scope.
type TelemetrySettings struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Scope   string `yaml:"scope" mapstructure:"scope"`
	// Endpoint is the OTLP HTTP host:port. Empty means the host application
	// installs its own providers.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio; zero keeps the default of 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// DefaultScope is the instrumentation scope used when none is configured.
const DefaultScope = "github.com/kbukum/seqpipe/pipeline"

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Telemetry.Scope == "" {
		s.Telemetry.Scope = DefaultScope
	}
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return err
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, s.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, s.Environment)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// ProviderConfig maps the telemetry settings onto exporter configuration.
func (s *Settings) ProviderConfig() observability.ProviderConfig {
	cfg := observability.DefaultProviderConfig(s.Name)
	cfg.Environment = s.Environment
	cfg.Insecure = s.Telemetry.Insecure
	if s.Telemetry.SampleRate > 0 {
		cfg.SampleRate = s.Telemetry.SampleRate
	}
	if s.Telemetry.Endpoint != "" {
		cfg.Endpoint = s.Telemetry.Endpoint
	}
	return cfg
}
