package pipeline

import (
	stderrors "errors"
	"testing"

	"github.com/kbukum/seqpipe/errors"
)

func TestStageKind_String(t *testing.T) {
	tests := []struct {
		kind StageKind
		want string
	}{
		{KindMap, "map"},
		{KindFilter, "filter"},
		{KindInspect, "inspect"},
		{StageKind(0), "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRunStages(t *testing.T) {
	double := MapStage(func(v int) int { return v * 2 })
	even := FilterStage(func(v int) bool { return v%2 == 0 })
	big := FilterStage(func(v int) bool { return v > 5 })

	tests := []struct {
		name    string
		stages  []Stage[int]
		in      int
		want    int
		outcome Outcome
	}{
		{"no stages", nil, 7, 7, Kept},
		{"map", []Stage[int]{double}, 3, 6, Kept},
		{"filter keeps", []Stage[int]{even}, 4, 4, Kept},
		{"filter drops", []Stage[int]{even}, 3, 0, Dropped},
		{"map then filter", []Stage[int]{double, big}, 3, 6, Kept},
		{"filter then map drops", []Stage[int]{big, double}, 3, 0, Dropped},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := runStages(tc.stages, tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Outcome != tc.outcome {
				t.Fatalf("outcome = %v, want %v", res.Outcome, tc.outcome)
			}
			if res.IsKept() && res.Value != tc.want {
				t.Errorf("value = %d, want %d", res.Value, tc.want)
			}
		})
	}
}

func TestRunStages_StopsAfterDrop(t *testing.T) {
	calls := 0
	stages := []Stage[int]{
		FilterStage(func(int) bool { return false }),
		InspectStage(func(int) { calls++ }),
	}
	res, err := runStages(stages, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsKept() {
		t.Error("expected element to be dropped")
	}
	if calls != 0 {
		t.Errorf("stage after a drop ran %d times", calls)
	}
}

func TestRunStages_Error(t *testing.T) {
	errBoom := stderrors.New("boom")
	tests := []struct {
		name  string
		stage Stage[int]
		kind  string
	}{
		{"try map", TryMapStage(func(int) (int, error) { return 0, errBoom }), "map"},
		{"try filter", TryFilterStage(func(int) (bool, error) { return false, errBoom }), "filter"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stages := []Stage[int]{MapStage(func(v int) int { return v }), tc.stage}
			_, err := runStages(stages, 1)
			if !stderrors.Is(err, errBoom) {
				t.Fatalf("expected boom in chain, got %v", err)
			}
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.Code != errors.ErrCodeStageFailed {
				t.Fatalf("expected STAGE_FAILED, got %v", err)
			}
			if appErr.Details["stage"] != 1 || appErr.Details["kind"] != tc.kind {
				t.Errorf("details = %v", appErr.Details)
			}
		})
	}
}

func TestResult_ZeroValueIsNotKept(t *testing.T) {
	var r Result[int]
	if r.IsKept() || r.Outcome == Dropped {
		t.Error("zero Result must be neither kept nor dropped")
	}
}
