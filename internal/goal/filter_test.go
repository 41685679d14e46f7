package goal

import (
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/goal-roi/internal/integral"
)

func TestNewFilter_InvalidParams(t *testing.T) {
	p := DefaultParams()
	p.DecimationRate = 0
	if _, err := NewFilter(p); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("NewFilter: got %v, want ErrInvalidParams", err)
	}
}

func TestFilter_NameAndDependencies(t *testing.T) {
	p := DefaultParams()
	f, err := NewFilter(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "GoalByII" {
		t.Errorf("Name: got %s, want GoalByII", f.Name())
	}
	if f.ExpectedDependencies() != 3 {
		t.Errorf("ExpectedDependencies without mask: got %d, want 3", f.ExpectedDependencies())
	}

	p.UseMask = 1
	f, _ = NewFilter(p)
	if f.ExpectedDependencies() != 4 {
		t.Errorf("ExpectedDependencies with mask: got %d, want 4", f.ExpectedDependencies())
	}
}

func TestFilter_ShapeMismatch(t *testing.T) {
	white, green := createRandomFrame(t, 8, 6, 41)
	smallWhite, _ := createRandomFrame(t, 7, 6, 42)

	tests := []struct {
		name    string
		useMask int
		in      Inputs
		want    error
	}{
		{"white size", 0, Inputs{WhiteII: smallWhite, GreenII: green, Widths: constWidths(8, 6, 2)}, ErrShapeMismatch},
		{"green size", 0, Inputs{WhiteII: white, GreenII: smallWhite, Widths: constWidths(8, 6, 2)}, ErrShapeMismatch},
		{"width map size", 0, Inputs{WhiteII: white, GreenII: green, Widths: constWidths(6, 8, 2)}, ErrShapeMismatch},
		{"width map data", 0, Inputs{WhiteII: white, GreenII: green, Widths: &WidthMap{Rows: 6, Cols: 8, Data: make([]float32, 3)}}, ErrShapeMismatch},
		{"non uniform mask scale", 1, Inputs{WhiteII: white, GreenII: green, Widths: constWidths(8, 6, 2), Mask: createMask(16, 6)}, ErrShapeMismatch},
		{"empty mask", 1, Inputs{WhiteII: white, GreenII: green, Widths: constWidths(8, 6, 2), Mask: createMask(0, 0)}, ErrShapeMismatch},
		{"missing mask", 1, Inputs{WhiteII: white, GreenII: green, Widths: constWidths(8, 6, 2)}, ErrMissingInput},
		{"missing green", 0, Inputs{WhiteII: white, Widths: constWidths(8, 6, 2)}, ErrMissingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.UseMask = tt.useMask
			f, err := NewFilter(p)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := f.Run(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Run: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFilter_Process(t *testing.T) {
	white, green := createClassifiedFrame(t, postOnGrass...)
	p := scenarioParams()
	p.AboveRatio = 2
	p.BelowRatio = 2
	f, err := NewFilter(p)
	if err != nil {
		t.Fatal(err)
	}

	out, err := f.Process([]any{white, green, constWidths(8, 8, 2)})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	res, ok := out.(*Result)
	if !ok {
		t.Fatalf("Process returned %T, want *Result", out)
	}
	if len(res.ROIs) != 1 || res.ROIs[0].Anchor != image.Pt(4, 4) {
		t.Errorf("ROIs: got %+v", res.ROIs)
	}

	if _, err := f.Process([]any{white, green}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("short deps: got %v, want ErrMissingInput", err)
	}
	if _, err := f.Process([]any{white, "green", constWidths(8, 8, 2)}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("wrong type: got %v, want ErrMissingInput", err)
	}
}

func TestFilter_ProcessWithMask(t *testing.T) {
	white, green := createClassifiedFrame(t, postOnGrass...)
	p := scenarioParams()
	p.UseMask = 1
	f, _ := NewFilter(p)

	if _, err := f.Process([]any{white, green, constWidths(8, 8, 2)}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("missing mask: got %v, want ErrMissingInput", err)
	}

	// Nothing of the field is visible: every anchor is rejected.
	out, err := f.Process([]any{white, green, constWidths(8, 8, 2), createMask(16, 16)})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	res := out.(*Result)
	if len(res.ROIs) != 0 || res.Stats.MaskRejected != 64 {
		t.Errorf("got %d ROIs, stats %+v; want no ROI and 64 mask rejections", len(res.ROIs), res.Stats)
	}
}

func TestFilter_HeatMapGating(t *testing.T) {
	white, green := createRandomFrame(t, 10, 6, 43)
	in := Inputs{WhiteII: white, GreenII: green, Widths: constWidths(10, 6, 2)}
	p := DefaultParams()
	p.MinWidth = 0

	p.TagLevel = 0
	res, _ := runFilter(t, p, in)
	if res.HeatMap != nil {
		t.Error("heat map produced with tag_level 0")
	}

	p.TagLevel = 1
	res, _ = runFilter(t, p, in)
	if res.HeatMap == nil {
		t.Fatal("no heat map with tag_level 1")
	}
	if b := res.HeatMap.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("heat map size: got %dx%d, want 10x6", b.Dx(), b.Dy())
	}

	p.MaxRois = 3
	withMap, _ := runFilter(t, p, in, WithHeatMapRange(HeatMapRange{Min: -1, Max: 1}))
	p.TagLevel = 0
	withoutMap, _ := runFilter(t, p, in)
	if len(withMap.ROIs) != len(withoutMap.ROIs) {
		t.Error("heat map changed the ROI result")
	}
}

func TestFilter_ReusesScoreField(t *testing.T) {
	p := DefaultParams()
	f, _ := NewFilter(p)

	white, green := createRandomFrame(t, 12, 8, 44)
	if _, err := f.Run(Inputs{WhiteII: white, GreenII: green, Widths: constWidths(12, 8, 2)}); err != nil {
		t.Fatal(err)
	}
	first := f.ScoreField()

	white, green = createRandomFrame(t, 12, 8, 45)
	if _, err := f.Run(Inputs{WhiteII: white, GreenII: green, Widths: constWidths(12, 8, 2)}); err != nil {
		t.Fatal(err)
	}
	if f.ScoreField() != first {
		t.Error("score field reallocated for same-size frame")
	}

	white, green = createRandomFrame(t, 6, 4, 46)
	if _, err := f.Run(Inputs{WhiteII: white, GreenII: green, Widths: constWidths(6, 4, 2)}); err != nil {
		t.Fatal(err)
	}
	if f.ScoreField() == first || f.ScoreField().Cols() != 6 {
		t.Error("score field not resized for a smaller frame")
	}
}

func TestFilter_EmptyFrame(t *testing.T) {
	f, _ := NewFilter(DefaultParams())
	empty := integral.New(0, 0)
	res, err := f.Run(Inputs{WhiteII: empty, GreenII: empty, Widths: NewWidthMap(0, 0)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.ROIs) != 0 || res.Stats.Anchors != 0 {
		t.Errorf("empty frame: got %+v", res)
	}
}
