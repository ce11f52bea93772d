package pipeline

import (
	"github.com/kbukum/seqpipe/errors"
)

// StageKind tags the variant held by a Stage.
type StageKind uint8

const (
	KindMap StageKind = iota + 1
	KindFilter
	KindInspect
)

func (k StageKind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindFilter:
		return "filter"
	case KindInspect:
		return "inspect"
	default:
		return "unknown"
	}
}

// Stage is one queued per-element transformation. It is immutable once built.
type Stage[V any] struct {
	kind      StageKind
	transform func(V) (V, error)
	predicate func(V) (bool, error)
}

// Kind returns the stage variant.
func (s Stage[V]) Kind() StageKind { return s.kind }

// MapStage replaces each value with fn(value).
func MapStage[V any](fn func(V) V) Stage[V] {
	return Stage[V]{kind: KindMap, transform: func(v V) (V, error) { return fn(v), nil }}
}

// TryMapStage is MapStage for a transform that can fail.
func TryMapStage[V any](fn func(V) (V, error)) Stage[V] {
	return Stage[V]{kind: KindMap, transform: fn}
}

// FilterStage drops every value for which fn returns false.
func FilterStage[V any](fn func(V) bool) Stage[V] {
	return Stage[V]{kind: KindFilter, predicate: func(v V) (bool, error) { return fn(v), nil }}
}

// TryFilterStage is FilterStage for a predicate that can fail.
func TryFilterStage[V any](fn func(V) (bool, error)) Stage[V] {
	return Stage[V]{kind: KindFilter, predicate: fn}
}

// InspectStage calls fn with each value that reaches it and passes the value on.
func InspectStage[V any](fn func(V)) Stage[V] {
	return Stage[V]{kind: KindInspect, transform: func(v V) (V, error) {
		fn(v)
		return v, nil
	}}
}

// Outcome reports whether an element survived the stage chain.
// The zero Outcome is neither and never produced.
type Outcome uint8

const (
	// Kept means every stage passed and Result.Value holds the final value.
	Kept Outcome = iota + 1
	// Dropped means a filter stage rejected the element.
	Dropped
)

// Result is the outcome of walking one element through a stage chain.
// Value is meaningful only when Outcome is Kept.
type Result[V any] struct {
	Value   V
	Outcome Outcome
}

// IsKept reports whether the element survived.
func (r Result[V]) IsKept() bool { return r.Outcome == Kept }

// runStages applies stages to v in order. A rejecting filter ends the walk
// with Dropped; a failing stage function ends it with a STAGE_FAILED error.
func runStages[V any](stages []Stage[V], v V) (Result[V], error) {
	for i, s := range stages {
		switch s.kind {
		case KindMap, KindInspect:
			out, err := s.transform(v)
			if err != nil {
				return Result[V]{}, errors.StageFailed(i, s.kind.String(), err)
			}
			v = out
		case KindFilter:
			ok, err := s.predicate(v)
			if err != nil {
				return Result[V]{}, errors.StageFailed(i, s.kind.String(), err)
			}
			if !ok {
				return Result[V]{Outcome: Dropped}, nil
			}
		}
	}
	return Result[V]{Value: v, Outcome: Kept}, nil
}
