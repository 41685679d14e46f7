package goal

import (
	"math"

	"github.com/ironsheep/goal-roi/internal/integral"
)

// Scorer rates patches by their white-versus-green content.
//
// Both integral images must describe the same rows×cols source.
type Scorer struct {
	White *integral.Image
	Green *integral.Image
}

// Score returns 255 × (white − green) / area over the patch clamped to the
// image, saturated to [-255, 255]. A patch with no pixel inside the image
// scores 0.
func (s Scorer) Score(p Patch) float64 {
	r := s.White.Clamp(p.Rect())
	if r.Empty() {
		return 0
	}
	area := float64(r.Dx() * r.Dy())
	diff := float64(s.White.Sum(r) - s.Green.Sum(r))
	return clampFloat(MaxPatchScore*diff/area, -MaxPatchScore, MaxPatchScore)
}

// AnchorScores holds the individual patch scores of one anchor and their combination.
type AnchorScores struct {
	Above      float64 `json:"above"`
	AboveLeft  float64 `json:"above_left"`
	AboveRight float64 `json:"above_right"`
	Below      float64 `json:"below"`
	// Boundary is scored for diagnostics and does not enter Combined.
	Boundary float64 `json:"boundary"`
	Combined int     `json:"combined"`
}

// ScoreAnchor builds and scores the five sampling patches of an anchor.
func (s Scorer) ScoreAnchor(p *Params, x, y int, width float64) AnchorScores {
	a := AnchorScores{
		Above:      s.Score(p.Patch(Above, x, y, width)),
		AboveLeft:  s.Score(p.Patch(AboveLeft, x, y, width)),
		AboveRight: s.Score(p.Patch(AboveRight, x, y, width)),
		Below:      s.Score(p.Patch(Below, x, y, width)),
		Boundary:   s.Score(p.Patch(Boundary, x, y, width)),
	}
	a.Combined = p.Combine(a.Above, a.Below, a.AboveLeft, a.AboveRight)
	return a
}

// Combine merges patch scores into one anchor score:
//
//	above − BelowCoeff×below − SideCoeff×(2×above − aboveRight − aboveLeft)
//
// saturated to [-510, 510] and truncated toward zero.
func (p *Params) Combine(above, below, aboveLeft, aboveRight float64) int {
	combined := above -
		p.BelowCoeff*below -
		p.SideCoeff*(2*above-aboveRight-aboveLeft)
	return int(clampFloat(combined, -MaxCombinedScore, MaxCombinedScore))
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
