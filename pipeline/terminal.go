package pipeline

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/seqpipe/errors"
	"github.com/kbukum/seqpipe/logger"
	"github.com/kbukum/seqpipe/observability"
)

// Terminal operation names, used in logs, span names and metric attributes.
const (
	OpAll     = "all"
	OpAny     = "any"
	OpNative  = "native"
	OpSeq     = "seq"
	OpCount   = "count"
	OpFirst   = "first"
	OpLast    = "last"
	OpForEach = "for_each"
	OpReduce  = "reduce"
	OpToMap   = "to_map"
)

// evaluate runs one terminal pass, feeding survivors to yield.
func (p *Pipeline[K, V]) evaluate(ctx context.Context, op string, yield func(K, V) bool) error {
	e := p.env
	observed := e.telemetry != nil || e.logEvaluations
	var runID string
	var attrs []attribute.KeyValue
	if observed {
		runID = uuid.NewString()
		attrs = append(attrs, observability.StageCount(len(p.stages)), observability.RunID(runID))
	}

	ctx, ev := e.telemetry.Start(ctx, op, attrs...)
	r := &run{maxBuffer: e.maxBuffer}
	kept := 0
	err := p.walk(ctx, r, func(k K, v V) bool {
		kept++
		return yield(k, v)
	})
	stats := observability.Stats{Visited: r.visited, Kept: kept, Dropped: r.dropped}
	ev.End(ctx, stats, err)

	if err != nil {
		fields := logger.MergeWithDuration(withStats(logger.ErrorFields(op, err), runID, stats), ev.Duration())
		if appErr, ok := errors.AsAppError(err); ok && errors.IsCallerCode(appErr.Code) {
			e.log.Warn("pipeline evaluation rejected", fields)
		} else {
			e.log.Error("pipeline evaluation failed", fields)
		}
		return err
	}
	if e.logEvaluations && e.log.DebugEnabled() {
		fields := withStats(logger.Fields(logger.FieldOperation, op), runID, stats)
		fields[logger.FieldStages] = len(p.stages)
		e.log.Debug("pipeline evaluated", logger.MergeWithDuration(fields, ev.Duration()))
	}
	return nil
}

func withStats(fields map[string]interface{}, runID string, s observability.Stats) map[string]interface{} {
	if runID != "" {
		fields[logger.FieldRunID] = runID
	}
	fields[logger.FieldVisited] = s.Visited
	fields[logger.FieldKept] = s.Kept
	fields[logger.FieldDropped] = s.Dropped
	return fields
}

// All reports whether fn holds for every element. It stops at the first
// element for which fn returns false. An empty pipeline reports true.
func (p *Pipeline[K, V]) All(ctx context.Context, fn func(V) bool) (bool, error) {
	result := true
	err := p.evaluate(ctx, OpAll, func(_ K, v V) bool {
		if !fn(v) {
			result = false
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

// Any reports whether fn holds for some element. It stops at the first
// element for which fn returns true. An empty pipeline reports false.
func (p *Pipeline[K, V]) Any(ctx context.Context, fn func(V) bool) (bool, error) {
	result := false
	err := p.evaluate(ctx, OpAny, func(_ K, v V) bool {
		if fn(v) {
			result = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

// Native materializes the pipeline into an ordered slice of entries.
// On error the partial result is discarded and nil is returned.
func (p *Pipeline[K, V]) Native(ctx context.Context) ([]Entry[K, V], error) {
	out := []Entry[K, V]{}
	err := p.evaluate(ctx, OpNative, func(k K, v V) bool {
		out = append(out, Entry[K, V]{Key: k, Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Collect is an alias of Native.
func (p *Pipeline[K, V]) Collect(ctx context.Context) ([]Entry[K, V], error) {
	return p.Native(ctx)
}

// Values materializes the surviving values in order.
func (p *Pipeline[K, V]) Values(ctx context.Context) ([]V, error) {
	out := []V{}
	err := p.evaluate(ctx, OpNative, func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Keys materializes the surviving keys in order.
func (p *Pipeline[K, V]) Keys(ctx context.Context) ([]K, error) {
	out := []K{}
	err := p.evaluate(ctx, OpNative, func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Seq returns a lazy sequence over the pipeline and a function reporting the
// error of the most recent iteration. Breaking out of a range loop stops
// drawing from the source.
//
//	seq, errFn := p.Seq(ctx)
//	for k, v := range seq { ... }
//	if err := errFn(); err != nil { ... }
func (p *Pipeline[K, V]) Seq(ctx context.Context) (iter.Seq2[K, V], func() error) {
	var err error
	seq := func(yield func(K, V) bool) {
		err = p.evaluate(ctx, OpSeq, yield)
	}
	return seq, func() error { return err }
}

// Count returns the number of surviving elements.
func (p *Pipeline[K, V]) Count(ctx context.Context) (int, error) {
	n := 0
	err := p.evaluate(ctx, OpCount, func(K, V) bool {
		n++
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// First returns the first surviving element. ok is false for an empty pipeline.
func (p *Pipeline[K, V]) First(ctx context.Context) (entry Entry[K, V], ok bool, err error) {
	err = p.evaluate(ctx, OpFirst, func(k K, v V) bool {
		entry, ok = Entry[K, V]{Key: k, Value: v}, true
		return false
	})
	if err != nil {
		return Entry[K, V]{}, false, err
	}
	return entry, ok, nil
}

// Last returns the last surviving element. ok is false for an empty pipeline.
func (p *Pipeline[K, V]) Last(ctx context.Context) (entry Entry[K, V], ok bool, err error) {
	err = p.evaluate(ctx, OpLast, func(k K, v V) bool {
		entry, ok = Entry[K, V]{Key: k, Value: v}, true
		return true
	})
	if err != nil {
		return Entry[K, V]{}, false, err
	}
	return entry, ok, nil
}

// ForEach calls fn for every surviving element in order. A non-nil error
// from fn stops the evaluation and is returned unchanged.
func (p *Pipeline[K, V]) ForEach(ctx context.Context, fn func(K, V) error) error {
	var fnErr error
	err := p.evaluate(ctx, OpForEach, func(k K, v V) bool {
		if e := fn(k, v); e != nil {
			fnErr = e
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return fnErr
}
