package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqpipe/errors"
)

// Stats counts what one evaluation did.
type Stats struct {
	// Visited is the number of elements drawn from the source.
	Visited int
	// Kept is the number of elements that passed every stage.
	Kept int
	// Dropped is the number of elements rejected by a filter stage.
	Dropped int
}

// Telemetry bundles a tracer and metric instruments for one scope.
// A nil *Telemetry is valid and records nothing.
type Telemetry struct {
	tracer      trace.Tracer
	instruments *Instruments
}

// NewTelemetry creates telemetry from explicit providers.
func NewTelemetry(tp trace.TracerProvider, mp metric.MeterProvider, scope string) (*Telemetry, error) {
	instruments, err := NewInstruments(mp.Meter(scope))
	if err != nil {
		return nil, err
	}
	return &Telemetry{
		tracer:      tp.Tracer(scope),
		instruments: instruments,
	}, nil
}

// Global creates telemetry from the otel global providers.
func Global(scope string) (*Telemetry, error) {
	return NewTelemetry(otel.GetTracerProvider(), otel.GetMeterProvider(), scope)
}

// Evaluation tracks a single terminal operation.
type Evaluation struct {
	telemetry *Telemetry
	span      trace.Span
	op        string
	start     time.Time
}

// Start opens a span for op. The returned Evaluation must be ended.
func (t *Telemetry) Start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, *Evaluation) {
	ev := &Evaluation{telemetry: t, op: op, start: time.Now()}
	if t == nil {
		return ctx, ev
	}
	attrs = append(attrs, attribute.String(AttrOperation, op))
	ctx, ev.span = t.tracer.Start(ctx, SpanPrefix+op, trace.WithAttributes(attrs...))
	return ctx, ev
}

// Duration returns the elapsed time since the evaluation started.
func (e *Evaluation) Duration() time.Duration {
	return time.Since(e.start)
}

// End closes the span and records metrics.
func (e *Evaluation) End(ctx context.Context, stats Stats, err error) {
	if e.telemetry == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		e.span.RecordError(err)
		e.span.SetStatus(codes.Error, err.Error())
		e.span.SetAttributes(attribute.String(AttrErrorCode, code))
		e.telemetry.instruments.RecordError(ctx, e.op, code)
	}
	e.span.SetAttributes(
		attribute.Int(AttrVisited, stats.Visited),
		attribute.Int(AttrKept, stats.Kept),
		attribute.Int(AttrDropped, stats.Dropped),
		attribute.String(AttrStatus, status),
	)
	e.span.End()
	e.telemetry.instruments.RecordEvaluation(ctx, e.op, status, stats, e.Duration())
}
