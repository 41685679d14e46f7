package goal

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
)

// ErrInvalidParams is returned when a parameter is outside its valid range.
var ErrInvalidParams = errors.New("invalid goal parameters")

// MaxCombinedScore bounds the absolute value of a combined anchor score.
const MaxCombinedScore = 510

// MaxPatchScore bounds the absolute value of a single patch score.
const MaxPatchScore = 255

// Params configures the goal-post ROI detector.
//
// All widths are expressed after scaling by WidthScale. A Params value is
// validated once when a Filter is built and never changes afterwards.
type Params struct {
	// WidthScale multiplies every local width before patch sizing.
	WidthScale float64 `toml:"width_scale" json:"width_scale"`

	// AboveRatio is the Above patch height as a multiple of the scaled width.
	AboveRatio float64 `toml:"above_ratio" json:"above_ratio"`

	// BelowRatio is the Below patch height as a multiple of the scaled width.
	BelowRatio float64 `toml:"below_ratio" json:"below_ratio"`

	// BoundaryWidthRatio is the Boundary patch width as a multiple of the scaled width.
	BoundaryWidthRatio float64 `toml:"boundary_width_ratio" json:"boundary_width_ratio"`

	// ROIRatio is the side of the reported ROI square as a multiple of the scaled width.
	ROIRatio float64 `toml:"roi_ratio" json:"roi_ratio"`

	// MinWidth is the minimal scaled width for accepting an anchor when the
	// mask is unused or the anchor's mask block is only partially filled.
	MinWidth float64 `toml:"min_width" json:"min_width"`

	// FilledMaskMinWidth replaces MinWidth when the mask block is entirely foreground.
	FilledMaskMinWidth float64 `toml:"filled_mask_min_width" json:"filled_mask_min_width"`

	// MinScore is the score a block must exceed to become a candidate.
	// Reminder: scores lie in [-510, 510].
	MinScore float64 `toml:"min_score" json:"min_score"`

	// MaxRois is the maximal number of ROIs returned.
	MaxRois int `toml:"max_rois" json:"max_rois"`

	// BelowCoeff weights the Below patch score.
	BelowCoeff float64 `toml:"below_coeff" json:"below_coeff"`

	// SideCoeff weights the lateral term (2*above - aboveRight - aboveLeft).
	// The term is subtracted: negative values reward contrast with the
	// lateral patches, positive values penalize it.
	SideCoeff float64 `toml:"side_coeff" json:"side_coeff"`

	// DecimationRate is the grid step, in pixels, between two anchors.
	DecimationRate int `toml:"decimation_rate" json:"decimation_rate"`

	// TagLevel enables the heat-map when > 0.
	TagLevel int `toml:"tag_level" json:"tag_level"`

	// UseMask enables field-border mask gating when > 0.
	UseMask int `toml:"use_mask" json:"use_mask"`
}

// DefaultParams returns the parameters used when no configuration is given.
func DefaultParams() Params {
	return Params{
		WidthScale:         1.0,
		AboveRatio:         2.0,
		BelowRatio:         1.0,
		BoundaryWidthRatio: 3.0,
		ROIRatio:           3.0,
		MinWidth:           2.0,
		FilledMaskMinWidth: 1.0,
		MinScore:           100,
		MaxRois:            4,
		BelowCoeff:         1.0,
		SideCoeff:          -0.25,
		DecimationRate:     4,
		TagLevel:           0,
		UseMask:            0,
	}
}

// Validate checks every parameter range. The returned error wraps
// ErrInvalidParams and names the first offending parameter.
func (p *Params) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"width_scale", p.WidthScale},
		{"above_ratio", p.AboveRatio},
		{"below_ratio", p.BelowRatio},
		{"boundary_width_ratio", p.BoundaryWidthRatio},
		{"roi_ratio", p.ROIRatio},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrInvalidParams, f.name, f.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"min_width", p.MinWidth},
		{"filled_mask_min_width", p.FilledMaskMinWidth},
	}
	for _, f := range nonNegative {
		if !(f.value >= 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a non-negative finite number, got %v", ErrInvalidParams, f.name, f.value)
		}
	}

	finite := []struct {
		name  string
		value float64
	}{
		{"min_score", p.MinScore},
		{"below_coeff", p.BelowCoeff},
		{"side_coeff", p.SideCoeff},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParams, f.name, f.value)
		}
	}

	if p.MaxRois < 0 {
		return fmt.Errorf("%w: max_rois must be >= 0, got %d", ErrInvalidParams, p.MaxRois)
	}
	if p.DecimationRate < 1 {
		return fmt.Errorf("%w: decimation_rate must be >= 1, got %d", ErrInvalidParams, p.DecimationRate)
	}
	if p.TagLevel < 0 {
		return fmt.Errorf("%w: tag_level must be >= 0, got %d", ErrInvalidParams, p.TagLevel)
	}
	if p.UseMask < 0 {
		return fmt.Errorf("%w: use_mask must be >= 0, got %d", ErrInvalidParams, p.UseMask)
	}
	return nil
}

// LoadParams reads a TOML parameter file. Keys missing from the file keep
// their DefaultParams value. The result is validated before being returned.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Params{}, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Params{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidParams, undecoded[0].String(), path)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
