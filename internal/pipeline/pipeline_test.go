package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

// constant returns a source filter producing v
func constant(v any) *FuncFilter {
	return &FuncFilter{FilterName: "Constant", Fn: func([]any) (any, error) { return v, nil }}
}

// sum returns a filter adding n integer dependencies
func sum(n int) *FuncFilter {
	return &FuncFilter{FilterName: "Sum", Inputs: n, Fn: func(deps []any) (any, error) {
		total := 0
		for _, d := range deps {
			total += d.(int)
		}
		return total, nil
	}}
}

func TestRunner_Step(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	if err := r.Add("a", constant(2)); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("b", constant(3)); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("ab", sum(2), "a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("total", sum(3), "ab", "a", "a"); err != nil {
		t.Fatal(err)
	}

	if err := r.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	out, err := r.Output("total")
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if out.(int) != 9 {
		t.Errorf("total: got %v, want 9", out)
	}
	if got := r.Stages(); !reflect.DeepEqual(got, []string{"a", "b", "ab", "total"}) {
		t.Errorf("Stages: got %v", got)
	}
}

func TestRunner_AddErrors(t *testing.T) {
	r := NewRunner(zerolog.Nop())
	_ = r.Add("a", constant(1))

	tests := []struct {
		name   string
		stage  string
		filter Filter
		deps   []string
		want   error
	}{
		{"unknown dependency", "x", sum(1), []string{"missing"}, ErrUnknownStage},
		{"too few dependencies", "x", sum(2), []string{"a"}, ErrDependencyCount},
		{"too many dependencies", "x", constant(1), []string{"a"}, ErrDependencyCount},
		{"duplicate", "a", constant(1), nil, ErrDuplicateStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Add(tt.stage, tt.filter, tt.deps...); !errors.Is(err, tt.want) {
				t.Errorf("Add: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunner_StepError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRunner(zerolog.Nop())
	_ = r.Add("a", constant(1))
	_ = r.Add("fail", &FuncFilter{FilterName: "Fail", Inputs: 1, Fn: func([]any) (any, error) { return nil, boom }}, "a")
	_ = r.Add("after", sum(1), "fail")

	err := r.Step()
	if !errors.Is(err, boom) {
		t.Fatalf("Step: got %v, want wrapped boom", err)
	}
	if _, err := r.Output("a"); err != nil {
		t.Errorf("output of stage before failure missing: %v", err)
	}
	if _, err := r.Output("after"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("output of stage after failure: got %v, want ErrUnknownStage", err)
	}
}
