package pipeline_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/goal-roi/internal/goal"
	"github.com/ironsheep/goal-roi/internal/integral"
	"github.com/ironsheep/goal-roi/internal/pipeline"
)

var _ pipeline.Filter = (*goal.Filter)(nil)

// source wraps a value as a dependency-free stage
func source(name string, v any) *pipeline.FuncFilter {
	return &pipeline.FuncFilter{FilterName: name, Fn: func([]any) (any, error) { return v, nil }}
}

func TestRunner_GoalFilter(t *testing.T) {
	// A white post over columns [8,12) and rows [0,10), green everywhere else
	white := image.NewGray(image.Rect(0, 0, 20, 20))
	green := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x >= 8 && x < 12 && y < 10 {
				white.SetGray(x, y, color.Gray{255})
			} else {
				green.SetGray(x, y, color.Gray{255})
			}
		}
	}
	widths := goal.NewWidthMap(20, 20)
	for i := range widths.Data {
		widths.Data[i] = 4
	}

	p := goal.DefaultParams()
	p.DecimationRate = 2
	p.MaxRois = 1
	p.SideCoeff = 0
	f, err := goal.NewFilter(p)
	if err != nil {
		t.Fatal(err)
	}

	r := pipeline.NewRunner(zerolog.Nop())
	steps := []struct {
		name   string
		filter pipeline.Filter
		deps   []string
	}{
		{"white", source("WhiteII", integral.FromGray(white)), nil},
		{"green", source("GreenII", integral.FromGray(green)), nil},
		{"width", source("PostWidth", widths), nil},
		{"goal", f, []string{"white", "green", "width"}},
	}
	for _, s := range steps {
		if err := r.Add(s.name, s.filter, s.deps...); err != nil {
			t.Fatalf("Add(%s) failed: %v", s.name, err)
		}
	}

	if err := r.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	out, err := r.Output("goal")
	if err != nil {
		t.Fatal(err)
	}
	res := out.(*goal.Result)
	if len(res.ROIs) != 1 {
		t.Fatalf("ROI count: got %d, want 1", len(res.ROIs))
	}
	if got := res.ROIs[0].Anchor; got != image.Pt(10, 10) {
		t.Errorf("anchor: got %v, want (10,10)", got)
	}
	if res.ROIs[0].Score != goal.MaxCombinedScore {
		t.Errorf("score: got %d, want %d", res.ROIs[0].Score, goal.MaxCombinedScore)
	}
}
