package goal

import (
	"image"
	"sort"
)

// ROI is a region likely to contain a goal post.
type ROI struct {
	// Anchor is the top-left cell of the decimation block the ROI comes from.
	Anchor image.Point `json:"anchor"`

	// Patch is the ROI square centered on the anchor.
	Patch Patch `json:"patch"`

	// Score is the combined score of the block, in [-510, 510].
	Score int `json:"score"`
}

// Bounds returns the ROI square rounded to pixels, not clamped.
func (r ROI) Bounds() image.Rectangle {
	return r.Patch.Rect()
}

// Extract ranks the accepted blocks of field scoring strictly above
// MinScore and returns at most MaxRois of them, best first.
//
// Blocks with equal scores keep raster order (row first, then column). The
// reported square is the ROISquare patch of the block's anchor, sized from
// the width map at the anchor. An empty, non-nil slice is returned when no
// block qualifies.
func Extract(field *ScoreField, widths *WidthMap, p *Params) []ROI {
	rois := make([]ROI, 0)
	if p.MaxRois == 0 {
		return rois
	}

	type candidate struct {
		x, y  int
		score int
	}
	var candidates []candidate
	for y := 0; y < field.rows; y += field.rate {
		for x := 0; x < field.cols; x += field.rate {
			if !field.Accepted(x, y) {
				continue
			}
			score := field.At(x, y)
			if float64(score) > p.MinScore {
				candidates = append(candidates, candidate{x: x, y: y, score: score})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > p.MaxRois {
		candidates = candidates[:p.MaxRois]
	}
	for _, c := range candidates {
		rois = append(rois, ROI{
			Anchor: image.Pt(c.x, c.y),
			Patch:  p.Patch(ROISquare, c.x, c.y, widths.At(c.x, c.y)),
			Score:  c.score,
		})
	}
	return rois
}
