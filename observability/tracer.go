package observability

import "go.opentelemetry.io/otel/attribute"

// Span name prefix for evaluations.
const SpanPrefix = "pipeline."

// Common attribute keys.
const (
	AttrOperation = "pipeline.operation"
	AttrRunID     = "pipeline.run_id"
	AttrStages    = "pipeline.stages"
	AttrVisited   = "pipeline.visited"
	AttrKept      = "pipeline.kept"
	AttrDropped   = "pipeline.dropped"
	AttrStatus    = "status"
	AttrErrorCode = "error.code"
)

// Status values recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StageCount is a span start attribute carrying the number of queued stages.
func StageCount(n int) attribute.KeyValue {
	return attribute.Int(AttrStages, n)
}

// RunID is a span start attribute carrying the evaluation run id.
func RunID(id string) attribute.KeyValue {
	return attribute.String(AttrRunID, id)
}
