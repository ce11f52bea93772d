package pipeline

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/kbukum/seqpipe/errors"
)

func TestFromSlice_CopiesInput(t *testing.T) {
	items := []int{1, 2, 3}
	p := FromSlice(items)
	items[0] = 100

	got, err := p.Values(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromEntries_PreservesKeys(t *testing.T) {
	p := FromEntries([]Entry[string, int]{{"b", 2}, {"a", 1}, {"c", 3}})
	keys, err := p.Keys(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(keys, []string{"b", "a", "c"}) {
		t.Errorf("keys = %v, want [b a c]", keys)
	}
}

func TestFromSeq(t *testing.T) {
	p := FromSeq(slices.Values([]string{"x", "y"}))
	got, err := p.Native(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry[int, string]{{0, "x"}, {1, "y"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !p.Replayable() {
		t.Error("seq pipelines should be replayable")
	}
}

func TestFromSeq2(t *testing.T) {
	p := FromSeq2(slices.All([]string{"x", "y", "z"})).Filter(func(s string) bool { return s != "y" })
	got, err := p.Native(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry[int, string]{{0, "x"}, {2, "z"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromIterator(t *testing.T) {
	it := &sliceIter[string]{items: []string{"a", "b"}}
	p := FromIterator[string](it)
	got, err := p.Native(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry[int, string]{{0, "a"}, {1, "b"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !it.closed {
		t.Error("iterator should be closed after draining")
	}
}

func TestFromIterator_SecondPassFails(t *testing.T) {
	ctx := context.Background()
	p := FromIterator[int](&sliceIter[int]{items: []int{1, 2, 3}})
	if p.Replayable() {
		t.Fatal("iterator pipelines must not be replayable")
	}
	if _, err := p.Count(ctx); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	_, err := p.Count(ctx)
	if !errors.HasCode(err, errors.ErrCodeSourceConsumed) {
		t.Fatalf("second pass: expected SOURCE_CONSUMED, got %v", err)
	}
}

func TestFromIterator_SharedAcrossDerivedPipelines(t *testing.T) {
	ctx := context.Background()
	base := FromIterator[int](&sliceIter[int]{items: []int{1, 2, 3, 4}})
	derived := base.Filter(func(v int) bool { return v > 1 }).Skip(1)
	if derived.Replayable() {
		t.Fatal("pipeline derived from a single-pass source must not be replayable")
	}

	got, err := derived.Values(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{3, 4}) {
		t.Errorf("got %v, want [3 4]", got)
	}
	if _, err := base.Values(ctx); !errors.HasCode(err, errors.ErrCodeSourceConsumed) {
		t.Errorf("expected SOURCE_CONSUMED from the base pipeline, got %v", err)
	}
}

func TestFromIterator_EarlyStop(t *testing.T) {
	it := &sliceIter[int]{items: []int{1, 2, 3, 4, 5}}
	first, ok, err := FromIterator[int](it).First(context.Background())
	if err != nil || !ok {
		t.Fatalf("First: ok=%v err=%v", ok, err)
	}
	if first.Value != 1 {
		t.Errorf("first = %v", first)
	}
	if it.pulls != 1 {
		t.Errorf("pulled %d elements, want 1", it.pulls)
	}
	if !it.closed {
		t.Error("iterator should be closed after an early stop")
	}
}

func TestFromIterator_Errors(t *testing.T) {
	errNext := stderrors.New("next failed")
	errClose := stderrors.New("close failed")

	tests := []struct {
		name  string
		it    *sliceIter[int]
		cause error
	}{
		{"next", &sliceIter[int]{items: []int{1, 2}, failAt: 1, err: errNext}, errNext},
		{"close", &sliceIter[int]{items: []int{1}, closeErr: errClose}, errClose},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromIterator[int](tc.it).Native(context.Background())
			if !errors.HasCode(err, errors.ErrCodeSourceFailed) {
				t.Fatalf("expected SOURCE_FAILED, got %v", err)
			}
			if !stderrors.Is(err, tc.cause) {
				t.Errorf("expected cause %v in chain, got %v", tc.cause, err)
			}
		})
	}
}

func TestOnce(t *testing.T) {
	ctx := context.Background()
	src := Once(SliceSource([]int{1, 2}))
	if Once(src) != src {
		t.Error("Once should not wrap a source twice")
	}

	p := FromSource(src)
	if n, err := p.Count(ctx); err != nil || n != 2 {
		t.Fatalf("first pass: n=%d err=%v", n, err)
	}
	if _, err := p.Count(ctx); !errors.HasCode(err, errors.ErrCodeSourceConsumed) {
		t.Errorf("expected SOURCE_CONSUMED, got %v", err)
	}
}

func TestReplayable_SameResults(t *testing.T) {
	ctx := context.Background()
	p := FromSlice([]int{5, 4, 3, 2, 1}).Filter(func(v int) bool { return v%2 == 1 }).Rev()
	first, err := p.Native(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Native(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("replay differs: %v vs %v", first, second)
	}
}
