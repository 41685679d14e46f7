package goal

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/goal-roi/internal/integral"
)

var (
	// ErrShapeMismatch is returned when input dimensions disagree.
	ErrShapeMismatch = errors.New("input shape mismatch")

	// ErrMissingInput is returned when a required input is nil.
	ErrMissingInput = errors.New("missing input")
)

// FilterName is the stable name reported by Filter.Name.
const FilterName = "GoalByII"

// Inputs groups one frame's inputs. Mask is only read when UseMask > 0.
type Inputs struct {
	WhiteII *integral.Image
	GreenII *integral.Image
	Widths  *WidthMap
	Mask    *image.Gray
}

// Result is the output of one invocation.
type Result struct {
	// ROIs is ordered by non-increasing score, len(ROIs) <= MaxRois.
	ROIs []ROI `json:"rois"`

	// HeatMap is nil unless TagLevel > 0.
	HeatMap *image.RGBA `json:"-"`

	Stats AccumulateStats `json:"stats"`
}

// Filter is the goal-post ROI detector.
//
// It owns scratch buffers reused from one frame to the next, so a Filter must
// not be run concurrently. Independent Filters can run in parallel.
type Filter struct {
	params   Params
	log      zerolog.Logger
	workers  int
	heatSpan *HeatMapRange

	field  *ScoreField
	maskII *integral.Image
}

// Option customizes a Filter.
type Option func(*Filter)

// WithLogger sets the logger used for per-frame debug statistics.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Filter) { f.log = log }
}

// WithWorkers shards the accumulation over n goroutines. n <= 1 keeps it synchronous.
func WithWorkers(n int) Option {
	return func(f *Filter) { f.workers = n }
}

// WithHeatMapRange fixes the heat-map scale instead of using the range
// observed in each frame.
func WithHeatMapRange(r HeatMapRange) Option {
	return func(f *Filter) { f.heatSpan = &r }
}

// NewFilter validates params and builds a Filter.
func NewFilter(params Params, opts ...Option) (*Filter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	f := &Filter{
		params:  params,
		log:     zerolog.Nop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name returns FilterName.
func (f *Filter) Name() string { return FilterName }

// Params returns a copy of the filter's parameters.
func (f *Filter) Params() Params { return f.params }

// ExpectedDependencies is 3 (white, green, widths), or 4 when the mask is used.
func (f *Filter) ExpectedDependencies() int {
	if f.params.UseMask > 0 {
		return 4
	}
	return 3
}

// ScoreField returns the field computed by the last Run. It is overwritten
// by the next Run.
func (f *Filter) ScoreField() *ScoreField { return f.field }

// Process runs the filter on dependencies given in pipeline order:
// white integral image, green integral image, width map and, when the mask
// is used, the field-border mask. It returns a *Result.
func (f *Filter) Process(deps []any) (any, error) {
	if len(deps) < 3 {
		return nil, fmt.Errorf("%w: got %d dependencies, want %d", ErrMissingInput, len(deps), f.ExpectedDependencies())
	}
	var in Inputs
	var ok bool
	if in.WhiteII, ok = deps[0].(*integral.Image); !ok {
		return nil, fmt.Errorf("%w: dependency 0 is %T, want white integral image", ErrMissingInput, deps[0])
	}
	if in.GreenII, ok = deps[1].(*integral.Image); !ok {
		return nil, fmt.Errorf("%w: dependency 1 is %T, want green integral image", ErrMissingInput, deps[1])
	}
	if in.Widths, ok = deps[2].(*WidthMap); !ok {
		return nil, fmt.Errorf("%w: dependency 2 is %T, want width map", ErrMissingInput, deps[2])
	}
	if f.params.UseMask > 0 {
		if len(deps) < 4 {
			return nil, fmt.Errorf("%w: field-border mask required when use_mask > 0", ErrMissingInput)
		}
		if in.Mask, ok = deps[3].(*image.Gray); !ok {
			return nil, fmt.Errorf("%w: dependency 3 is %T, want field-border mask", ErrMissingInput, deps[3])
		}
	}
	return f.Run(in)
}

// Run processes one frame.
func (f *Filter) Run(in Inputs) (*Result, error) {
	start := time.Now()
	if err := f.checkInputs(in); err != nil {
		return nil, err
	}

	p := &f.params
	rows, cols := in.Widths.Rows, in.Widths.Cols
	if !f.field.fits(rows, cols, p.DecimationRate) {
		f.field = NewScoreField(rows, cols, p.DecimationRate)
	}

	acc := accumulator{
		params: p,
		scorer: Scorer{White: in.WhiteII, Green: in.GreenII},
		widths: in.Widths,
		field:  f.field,
	}
	if p.UseMask > 0 {
		acc.mask = f.sampleMask(in.Mask, rows, cols)
	}
	stats := acc.run(f.workers)

	result := &Result{
		ROIs:  Extract(f.field, in.Widths, p),
		Stats: stats,
	}
	if p.TagLevel > 0 {
		span := f.field.Range()
		if f.heatSpan != nil {
			span = *f.heatSpan
		}
		result.HeatMap = RenderHeatMap(f.field, span)
	}

	f.log.Debug().
		Int("rows", rows).
		Int("cols", cols).
		Int("anchors", stats.Anchors).
		Int("accepted", stats.Accepted).
		Int("mask_rejected", stats.MaskRejected).
		Int("rois", len(result.ROIs)).
		Dur("elapsed", time.Since(start)).
		Msg("goal ROIs extracted")

	return result, nil
}

// sampleMask rebuilds the mask integral image, reusing its storage.
func (f *Filter) sampleMask(mask *image.Gray, rows, cols int) *maskSampler {
	b := mask.Bounds()
	if f.maskII == nil || f.maskII.Rows() != b.Dy() || f.maskII.Cols() != b.Dx() {
		f.maskII = integral.New(b.Dy(), b.Dx())
	}
	f.maskII.Accumulate(mask)
	return &maskSampler{
		ii:     f.maskII,
		scaleX: float64(b.Dx()) / float64(cols),
		scaleY: float64(b.Dy()) / float64(rows),
	}
}

// checkInputs verifies every shape relationship before any processing.
func (f *Filter) checkInputs(in Inputs) error {
	if in.WhiteII == nil || in.GreenII == nil || in.Widths == nil {
		return fmt.Errorf("%w: white, green and width inputs are required", ErrMissingInput)
	}
	if err := in.Widths.validate(); err != nil {
		return err
	}
	rows, cols := in.Widths.Rows, in.Widths.Cols
	for _, ii := range []struct {
		name string
		img  *integral.Image
	}{{"white", in.WhiteII}, {"green", in.GreenII}} {
		if ii.img.Rows() != rows || ii.img.Cols() != cols {
			return fmt.Errorf("%w: %s integral image is for %dx%d, width map is %dx%d",
				ErrShapeMismatch, ii.name, ii.img.Rows(), ii.img.Cols(), rows, cols)
		}
	}

	if f.params.UseMask <= 0 {
		return nil
	}
	if in.Mask == nil {
		return fmt.Errorf("%w: field-border mask required when use_mask > 0", ErrMissingInput)
	}
	b := in.Mask.Bounds()
	if rows == 0 || cols == 0 {
		return nil
	}
	// Same scale on both axes: maskRows/rows == maskCols/cols.
	if b.Dx() == 0 || b.Dy() == 0 || b.Dy()*cols != b.Dx()*rows {
		return fmt.Errorf("%w: mask is %dx%d, not a uniform scale of %dx%d",
			ErrShapeMismatch, b.Dy(), b.Dx(), rows, cols)
	}
	return nil
}
