package goal

import (
	"image"
	"math"
)

// PatchKind identifies one of the rectangles sampled around an anchor.
type PatchKind int

const (
	// Above sits on top of the anchor, roughly one post width wide.
	Above PatchKind = iota
	// AboveLeft has the size of Above, one patch width to its left.
	AboveLeft
	// AboveRight has the size of Above, one patch width to its right.
	AboveRight
	// Below sits under the anchor, roughly one post width wide.
	Below
	// Boundary spans from the top of Above to the bottom of Below and is wider than the post.
	Boundary
	// ROISquare is the square reported as region of interest, centered on the anchor.
	ROISquare
)

var patchKindNames = [...]string{
	Above:      "above",
	AboveLeft:  "above_left",
	AboveRight: "above_right",
	Below:      "below",
	Boundary:   "boundary",
	ROISquare:  "roi",
}

func (k PatchKind) String() string {
	if k < 0 || int(k) >= len(patchKindNames) {
		return "unknown"
	}
	return patchKindNames[k]
}

// Patch is an axis-aligned rectangle with floating-point corners.
//
// (X, Y) is the top-left corner; the rectangle covers [X, X+Width) × [Y, Y+Height).
type Patch struct {
	Kind   PatchKind `json:"-"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Rect rounds both corners to the nearest pixel. The result is not clamped
// and may extend outside the image.
func (p Patch) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(p.X)),
		int(math.Round(p.Y)),
		int(math.Round(p.X+p.Width)),
		int(math.Round(p.Y+p.Height)),
	)
}

// Center returns the center of the patch.
func (p Patch) Center() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Patch builds the patch of the given kind for anchor (x, y) and local width.
// The local width is multiplied by WidthScale before use.
//
// With we the scaled width, ha = AboveRatio*we and hb = BelowRatio*we:
//
//	Above      [x-we/2,   x+we/2)   × [y-ha, y)
//	AboveLeft  [x-3we/2,  x-we/2)   × [y-ha, y)
//	AboveRight [x+we/2,   x+3we/2)  × [y-ha, y)
//	Below      [x-we/2,   x+we/2)   × [y,    y+hb)
//	Boundary   [x-bw/2,   x+bw/2)   × [y-ha, y+hb)   with bw = BoundaryWidthRatio*we
//	ROISquare  [x-s/2,    x+s/2)    × [y-s/2, y+s/2) with s = ROIRatio*we
func (p *Params) Patch(kind PatchKind, x, y int, width float64) Patch {
	we := width * p.WidthScale
	fx, fy := float64(x), float64(y)
	aboveHeight := p.AboveRatio * we
	belowHeight := p.BelowRatio * we

	switch kind {
	case Above:
		return Patch{Kind: kind, X: fx - we/2, Y: fy - aboveHeight, Width: we, Height: aboveHeight}
	case AboveLeft:
		return Patch{Kind: kind, X: fx - 3*we/2, Y: fy - aboveHeight, Width: we, Height: aboveHeight}
	case AboveRight:
		return Patch{Kind: kind, X: fx + we/2, Y: fy - aboveHeight, Width: we, Height: aboveHeight}
	case Below:
		return Patch{Kind: kind, X: fx - we/2, Y: fy, Width: we, Height: belowHeight}
	case Boundary:
		bw := p.BoundaryWidthRatio * we
		return Patch{Kind: kind, X: fx - bw/2, Y: fy - aboveHeight, Width: bw, Height: aboveHeight + belowHeight}
	case ROISquare:
		side := p.ROIRatio * we
		return Patch{Kind: kind, X: fx - side/2, Y: fy - side/2, Width: side, Height: side}
	}
	return Patch{Kind: kind}
}
