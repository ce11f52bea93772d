package pipeline

import (
	"context"

	"github.com/kbukum/seqpipe/errors"
)

// MapTo transforms each value of p into a value of another type.
// Keys pass through unchanged.
func MapTo[K, V, W any](p *Pipeline[K, V], fn func(V) W) *Pipeline[K, W] {
	return TryMapTo(p, func(v V) (W, error) { return fn(v), nil })
}

// TryMapTo is MapTo for a transform that can fail. A failure is reported as a
// STAGE_FAILED error positioned after the stages already queued on p.
func TryMapTo[K, V, W any](p *Pipeline[K, V], fn func(V) (W, error)) *Pipeline[K, W] {
	index := len(p.stages)
	return convert(p, func(ctx context.Context, r *run, yield func(K, W) bool) error {
		var mapErr error
		err := p.walk(ctx, r, func(k K, v V) bool {
			w, err := fn(v)
			if err != nil {
				mapErr = errors.StageFailed(index, KindMap.String(), err)
				return false
			}
			return yield(k, w)
		})
		if mapErr != nil {
			return mapErr
		}
		return err
	})
}

// Reindex renumbers keys 0..n-1 in yield order.
//
//	Reindex(FromSlice(values).Rev()) // keys 0..n-1, values reversed
func Reindex[K, V any](p *Pipeline[K, V]) *Pipeline[int, V] {
	return convert(p, func(ctx context.Context, r *run, yield func(int, V) bool) error {
		i := 0
		return p.walk(ctx, r, func(_ K, v V) bool {
			ok := yield(i, v)
			i++
			return ok
		})
	})
}

// Reduce folds the surviving values into an accumulator, starting from initial.
func Reduce[K, V, R any](ctx context.Context, p *Pipeline[K, V], initial R, fn func(R, K, V) R) (R, error) {
	acc := initial
	err := p.evaluate(ctx, OpReduce, func(k K, v V) bool {
		acc = fn(acc, k, v)
		return true
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// ToMap materializes the pipeline into a map. When keys repeat, the last
// value wins.
func ToMap[K comparable, V any](ctx context.Context, p *Pipeline[K, V]) (map[K]V, error) {
	out := make(map[K]V)
	err := p.evaluate(ctx, OpToMap, func(k K, v V) bool {
		out[k] = v
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func convert[K, V, K2, W any](p *Pipeline[K, V], each func(ctx context.Context, r *run, yield func(K2, W) bool) error) *Pipeline[K2, W] {
	return &Pipeline[K2, W]{
		source: &derived[K2, W]{replayable: p.source.Replayable(), each: each},
		err:    p.err,
		env:    p.env,
	}
}
