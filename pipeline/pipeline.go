package pipeline

import (
	"context"
	"fmt"
	"iter"

	"github.com/kbukum/seqpipe/errors"
)

// Pipeline is an immutable, lazily evaluated chain of stages over a keyed
// source. The zero value is not usable; build pipelines with the From
// constructors or Create.
type Pipeline[K, V any] struct {
	source Source[K, V]
	stages []Stage[V]
	// err is a construction error returned by every terminal operation.
	err error
	env *env
}

// --- Constructors ---

// Create builds a pipeline over values keyed by index.
func Create[V any](values ...V) *Pipeline[int, V] {
	return FromSlice(values)
}

// FromSlice builds a pipeline over a copy of items keyed by index.
func FromSlice[V any](items []V, opts ...Option) *Pipeline[int, V] {
	return FromSource(SliceSource(items), opts...)
}

// FromEntries builds a pipeline over a copy of entries, preserving their keys and order.
func FromEntries[K, V any](entries []Entry[K, V], opts ...Option) *Pipeline[K, V] {
	dst := make([]Entry[K, V], len(entries))
	copy(dst, entries)
	return FromSource[K, V](&entrySource[K, V]{entries: dst}, opts...)
}

// FromSeq builds a pipeline over seq keyed by position. seq is assumed to be
// restartable; wrap the result's source with Once via FromSource if it is not.
func FromSeq[V any](seq iter.Seq[V], opts ...Option) *Pipeline[int, V] {
	return FromSource[int, V](&seqSource[V]{seq: seq}, opts...)
}

// FromSeq2 builds a pipeline over seq, preserving its keys. seq is assumed to
// be restartable.
func FromSeq2[K, V any](seq iter.Seq2[K, V], opts ...Option) *Pipeline[K, V] {
	return FromSource[K, V](&seq2Source[K, V]{seq: seq}, opts...)
}

// FromIterator builds a single-pass pipeline over it keyed by position.
// The iterator is closed once drained or when evaluation stops early.
func FromIterator[V any](it Iterator[V], opts ...Option) *Pipeline[int, V] {
	return FromSource[int, V](&iteratorSource[V]{it: it}, opts...)
}

// FromSource builds a pipeline over any Source.
func FromSource[K, V any](src Source[K, V], opts ...Option) *Pipeline[K, V] {
	return &Pipeline[K, V]{source: src, env: newEnv(opts)}
}

// With returns a pipeline with opts applied on top of the current environment.
func (p *Pipeline[K, V]) With(opts ...Option) *Pipeline[K, V] {
	e := *p.env
	for _, opt := range opts {
		opt(&e)
	}
	return &Pipeline[K, V]{source: p.source, stages: p.stages, err: p.err, env: &e}
}

// Replayable reports whether terminal operations may be called repeatedly.
func (p *Pipeline[K, V]) Replayable() bool { return p.source.Replayable() }

// Err returns the construction error recorded by an invalid combinator call.
func (p *Pipeline[K, V]) Err() error { return p.err }

// Stages returns the number of stages queued since the last segment boundary.
func (p *Pipeline[K, V]) Stages() int { return len(p.stages) }

// --- Stage combinators ---

// Filter keeps only values that satisfy fn.
func (p *Pipeline[K, V]) Filter(fn func(V) bool) *Pipeline[K, V] {
	return p.Apply(FilterStage(fn))
}

// TryFilter is Filter for a predicate that can fail.
func (p *Pipeline[K, V]) TryFilter(fn func(V) (bool, error)) *Pipeline[K, V] {
	return p.Apply(TryFilterStage(fn))
}

// Map transforms each value with fn. Use MapTo to change the value type.
func (p *Pipeline[K, V]) Map(fn func(V) V) *Pipeline[K, V] {
	return p.Apply(MapStage(fn))
}

// TryMap is Map for a transform that can fail.
func (p *Pipeline[K, V]) TryMap(fn func(V) (V, error)) *Pipeline[K, V] {
	return p.Apply(TryMapStage(fn))
}

// Inspect calls fn with each value that survives the preceding stages.
func (p *Pipeline[K, V]) Inspect(fn func(V)) *Pipeline[K, V] {
	return p.Apply(InspectStage(fn))
}

// Apply appends stages in order.
func (p *Pipeline[K, V]) Apply(stages ...Stage[V]) *Pipeline[K, V] {
	next := make([]Stage[V], 0, len(p.stages)+len(stages))
	next = append(next, p.stages...)
	next = append(next, stages...)
	return &Pipeline[K, V]{source: p.source, stages: next, err: p.err, env: p.env}
}

// --- Positional combinators ---

// Skip drops the first n elements that survive the current stages.
// n larger than the sequence yields an empty pipeline; negative n is an
// INVALID_ARGUMENT error reported by every terminal operation.
func (p *Pipeline[K, V]) Skip(n int) *Pipeline[K, V] {
	if n < 0 {
		return p.fail(errors.InvalidArgument("n", fmt.Sprintf("skip count must be >= 0 (got %d)", n)))
	}
	if n == 0 {
		return p
	}
	return p.derive(func(ctx context.Context, r *run, yield func(K, V) bool) error {
		skipped := 0
		return p.walk(ctx, r, func(k K, v V) bool {
			if skipped < n {
				skipped++
				return true
			}
			return yield(k, v)
		})
	})
}

// SkipWhile drops the longest prefix whose values satisfy fn, then yields the
// first value that fails it and every value after, unconditionally.
// fn is not called again once it has returned false.
func (p *Pipeline[K, V]) SkipWhile(fn func(V) bool) *Pipeline[K, V] {
	return p.derive(func(ctx context.Context, r *run, yield func(K, V) bool) error {
		skipping := true
		return p.walk(ctx, r, func(k K, v V) bool {
			if skipping {
				if fn(v) {
					return true
				}
				skipping = false
			}
			return yield(k, v)
		})
	})
}

// Take yields at most n elements and then stops drawing from the source.
// Negative n is an INVALID_ARGUMENT error reported by every terminal operation.
func (p *Pipeline[K, V]) Take(n int) *Pipeline[K, V] {
	if n < 0 {
		return p.fail(errors.InvalidArgument("n", fmt.Sprintf("take count must be >= 0 (got %d)", n)))
	}
	return p.derive(func(ctx context.Context, r *run, yield func(K, V) bool) error {
		if n == 0 {
			return nil
		}
		taken := 0
		return p.walk(ctx, r, func(k K, v V) bool {
			taken++
			return yield(k, v) && taken < n
		})
	})
}

// TakeWhile yields values while fn holds and stops at the first that fails it.
func (p *Pipeline[K, V]) TakeWhile(fn func(V) bool) *Pipeline[K, V] {
	return p.derive(func(ctx context.Context, r *run, yield func(K, V) bool) error {
		return p.walk(ctx, r, func(k K, v V) bool {
			return fn(v) && yield(k, v)
		})
	})
}

// Rev yields the elements in reverse order, each keeping its key.
// The preceding segment is buffered in full when the result is evaluated;
// with WithMaxBuffer set, exceeding the limit is an INVALID_ARGUMENT error.
// Use Reindex afterwards to renumber keys sequentially.
func (p *Pipeline[K, V]) Rev() *Pipeline[K, V] {
	return p.derive(func(ctx context.Context, r *run, yield func(K, V) bool) error {
		buf, err := p.buffer(ctx, r)
		if err != nil {
			return err
		}
		for i := len(buf) - 1; i >= 0; i-- {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !yield(buf[i].Key, buf[i].Value) {
				return nil
			}
		}
		return nil
	})
}

// --- internals ---

func (p *Pipeline[K, V]) fail(err error) *Pipeline[K, V] {
	if p.err != nil {
		err = p.err
	}
	return &Pipeline[K, V]{source: p.source, stages: p.stages, err: err, env: p.env}
}

// derive closes the current segment: the new pipeline draws from p.
func (p *Pipeline[K, V]) derive(each func(ctx context.Context, r *run, yield func(K, V) bool) error) *Pipeline[K, V] {
	return &Pipeline[K, V]{
		source: &derived[K, V]{replayable: p.source.Replayable(), each: each},
		err:    p.err,
		env:    p.env,
	}
}

// walk draws every element from the source, runs the stage chain on it and
// passes survivors to yield until yield returns false. A cancelled ctx stops
// the walk at the next element and its error is returned.
func (p *Pipeline[K, V]) walk(ctx context.Context, r *run, yield func(K, V) bool) error {
	if p.err != nil {
		return p.err
	}
	var stageErr error
	visit := func(k K, v V) bool {
		res, err := runStages(p.stages, v)
		if err != nil {
			stageErr = err
			return false
		}
		if res.Outcome == Dropped {
			r.dropped++
			return true
		}
		return yield(k, res.Value)
	}

	var err error
	if t, ok := p.source.(tracked[K, V]); ok {
		err = t.eachTracked(ctx, r, visit)
	} else {
		err = p.source.Each(ctx, func(k K, v V) bool {
			if ctxErr := ctx.Err(); ctxErr != nil {
				stageErr = ctxErr
				return false
			}
			r.visited++
			return visit(k, v)
		})
	}
	if stageErr != nil {
		return stageErr
	}
	return err
}

func (p *Pipeline[K, V]) buffer(ctx context.Context, r *run) ([]Entry[K, V], error) {
	limit := r.maxBuffer
	var buf []Entry[K, V]
	overflow := false
	err := p.walk(ctx, r, func(k K, v V) bool {
		if limit > 0 && len(buf) >= limit {
			overflow = true
			return false
		}
		buf = append(buf, Entry[K, V]{Key: k, Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	if overflow {
		return nil, errors.InvalidArgument("max_buffer", fmt.Sprintf("rev buffer limit %d exceeded", limit))
	}
	return buf, nil
}
