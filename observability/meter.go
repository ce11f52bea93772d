package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments holds the metric instruments recorded per evaluation.
type Instruments struct {
	evaluations metric.Int64Counter
	visited     metric.Int64Counter
	dropped     metric.Int64Counter
	errors      metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewInstruments creates metric instruments on the given meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	evaluations, err := meter.Int64Counter("pipeline.evaluations",
		metric.WithDescription("Total number of terminal evaluations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.evaluations counter: %w", err)
	}

	visited, err := meter.Int64Counter("pipeline.elements.visited",
		metric.WithDescription("Elements drawn from sources during evaluation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.elements.visited counter: %w", err)
	}

	dropped, err := meter.Int64Counter("pipeline.elements.dropped",
		metric.WithDescription("Elements rejected by filter stages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.elements.dropped counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.errors",
		metric.WithDescription("Evaluations that ended with an error, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.errors counter: %w", err)
	}

	duration, err := meter.Float64Histogram("pipeline.evaluation.duration",
		metric.WithDescription("Duration of terminal evaluations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.evaluation.duration histogram: %w", err)
	}

	return &Instruments{
		evaluations: evaluations,
		visited:     visited,
		dropped:     dropped,
		errors:      errorTotal,
		duration:    duration,
	}, nil
}

// RecordEvaluation records one finished evaluation.
func (m *Instruments) RecordEvaluation(ctx context.Context, op, status string, stats Stats, d time.Duration) {
	opAttr := metric.WithAttributes(attribute.String(AttrOperation, op))
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, op),
		attribute.String(AttrStatus, status),
	))
	m.visited.Add(ctx, int64(stats.Visited), opAttr)
	m.dropped.Add(ctx, int64(stats.Dropped), opAttr)
	m.duration.Record(ctx, d.Seconds(), opAttr)
}

// RecordError records a failed evaluation by error code.
func (m *Instruments) RecordError(ctx context.Context, op, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, op),
		attribute.String(AttrErrorCode, code),
	))
}
