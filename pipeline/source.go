package pipeline

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/kbukum/seqpipe/errors"
)

// Source produces the ordered (key, value) elements a pipeline draws from.
type Source[K, V any] interface {
	// Each calls yield for every element in order until yield returns false
	// or the elements run out.
	Each(ctx context.Context, yield func(K, V) bool) error
	// Replayable reports whether Each may be called more than once with
	// identical results.
	Replayable() bool
}

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// --- Replayable sources ---

type sliceSource[V any] struct {
	items []V
}

func (s *sliceSource[V]) Each(_ context.Context, yield func(int, V) bool) error {
	for i, v := range s.items {
		if !yield(i, v) {
			return nil
		}
	}
	return nil
}

func (s *sliceSource[V]) Replayable() bool { return true }

type entrySource[K, V any] struct {
	entries []Entry[K, V]
}

func (s *entrySource[K, V]) Each(_ context.Context, yield func(K, V) bool) error {
	for _, e := range s.entries {
		if !yield(e.Key, e.Value) {
			return nil
		}
	}
	return nil
}

func (s *entrySource[K, V]) Replayable() bool { return true }

type seqSource[V any] struct {
	seq iter.Seq[V]
}

func (s *seqSource[V]) Each(_ context.Context, yield func(int, V) bool) error {
	i := 0
	for v := range s.seq {
		if !yield(i, v) {
			return nil
		}
		i++
	}
	return nil
}

func (s *seqSource[V]) Replayable() bool { return true }

type seq2Source[K, V any] struct {
	seq iter.Seq2[K, V]
}

func (s *seq2Source[K, V]) Each(_ context.Context, yield func(K, V) bool) error {
	for k, v := range s.seq {
		if !yield(k, v) {
			return nil
		}
	}
	return nil
}

func (s *seq2Source[K, V]) Replayable() bool { return true }

// --- Single-pass sources ---

type iteratorSource[V any] struct {
	it   Iterator[V]
	used atomic.Bool
}

func (s *iteratorSource[V]) Each(ctx context.Context, yield func(int, V) bool) (err error) {
	if s.used.Swap(true) {
		return errors.SourceConsumed()
	}
	defer func() {
		if cerr := s.it.Close(); cerr != nil && err == nil {
			err = errors.SourceFailed(cerr)
		}
	}()
	for i := 0; ; i++ {
		v, ok, nerr := s.it.Next(ctx)
		if nerr != nil {
			return errors.SourceFailed(nerr)
		}
		if !ok || !yield(i, v) {
			return nil
		}
	}
}

func (s *iteratorSource[V]) Replayable() bool { return false }

type onceSource[K, V any] struct {
	src  Source[K, V]
	used atomic.Bool
}

func (s *onceSource[K, V]) Each(ctx context.Context, yield func(K, V) bool) error {
	if s.used.Swap(true) {
		return errors.SourceConsumed()
	}
	return s.src.Each(ctx, yield)
}

func (s *onceSource[K, V]) Replayable() bool { return false }

// Once wraps src so that it can be consumed a single time.
func Once[K, V any](src Source[K, V]) Source[K, V] {
	if o, ok := src.(*onceSource[K, V]); ok {
		return o
	}
	return &onceSource[K, V]{src: src}
}

// SliceSource returns a replayable source over a copy of items keyed by index.
func SliceSource[V any](items []V) Source[int, V] {
	dst := make([]V, len(items))
	copy(dst, items)
	return &sliceSource[V]{items: dst}
}

// --- Derived sources ---

// run accumulates counters for one terminal evaluation across segments.
type run struct {
	visited   int
	dropped   int
	maxBuffer int
}

// tracked is implemented by sources built from another pipeline so that a
// terminal evaluation can count work across segment boundaries.
type tracked[K, V any] interface {
	eachTracked(ctx context.Context, r *run, yield func(K, V) bool) error
}

// derived is the source of a pipeline built from another pipeline.
type derived[K, V any] struct {
	replayable bool
	each       func(ctx context.Context, r *run, yield func(K, V) bool) error
}

func (d *derived[K, V]) Each(ctx context.Context, yield func(K, V) bool) error {
	return d.each(ctx, &run{}, yield)
}

func (d *derived[K, V]) Replayable() bool { return d.replayable }

func (d *derived[K, V]) eachTracked(ctx context.Context, r *run, yield func(K, V) bool) error {
	return d.each(ctx, r, yield)
}
