package pipeline

import (
	"fmt"

	"github.com/kbukum/seqpipe/config"
	"github.com/kbukum/seqpipe/logger"
	"github.com/kbukum/seqpipe/observability"
)

// env is the shared, read-only evaluation environment of a pipeline and
// every pipeline derived from it.
type env struct {
	log            *logger.Logger
	telemetry      *observability.Telemetry
	logEvaluations bool
	maxBuffer      int
}

// Option configures the evaluation environment.
type Option func(*env)

// WithLogger sets the logger used for evaluation events.
func WithLogger(l *logger.Logger) Option {
	return func(e *env) { e.log = l }
}

// WithTelemetry records a span and metrics for every terminal operation.
func WithTelemetry(t *observability.Telemetry) Option {
	return func(e *env) { e.telemetry = t }
}

// WithEvaluationLogging emits one debug event per terminal operation.
func WithEvaluationLogging(enabled bool) Option {
	return func(e *env) { e.logEvaluations = enabled }
}

// WithMaxBuffer bounds how many elements Rev may hold. Zero means unlimited.
func WithMaxBuffer(n int) Option {
	return func(e *env) {
		if n >= 0 {
			e.maxBuffer = n
		}
	}
}

// OptionsFromSettings builds options from loaded settings.
func OptionsFromSettings(s *config.Settings) ([]Option, error) {
	opts := []Option{
		WithLogger(logger.New(&s.Logging, s.Name).WithComponent("pipeline")),
		WithEvaluationLogging(s.Pipeline.LogEvaluations),
		WithMaxBuffer(s.Pipeline.MaxBuffer),
	}
	if s.Telemetry.Enabled {
		scope := s.Telemetry.Scope
		if scope == "" {
			scope = config.DefaultScope
		}
		tel, err := observability.Global(scope)
		if err != nil {
			return nil, fmt.Errorf("creating telemetry: %w", err)
		}
		opts = append(opts, WithTelemetry(tel))
	}
	return opts, nil
}

func newEnv(opts []Option) *env {
	e := &env{}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get("pipeline")
	}
	return e
}
