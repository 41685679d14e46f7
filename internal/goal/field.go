package goal

import (
	"fmt"
	"math"
)

// WidthMap holds the expected post width, in pixels, at every pixel of the frame.
type WidthMap struct {
	Rows int
	Cols int
	Data []float32 // row-major, len == Rows*Cols
}

// NewWidthMap allocates a zeroed rows×cols width map.
func NewWidthMap(rows, cols int) *WidthMap {
	return &WidthMap{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// At returns the width at column x, row y.
func (m *WidthMap) At(x, y int) float64 {
	return float64(m.Data[y*m.Cols+x])
}

// Set stores the width at column x, row y.
func (m *WidthMap) Set(x, y int, w float64) {
	m.Data[y*m.Cols+x] = float32(w)
}

func (m *WidthMap) validate() error {
	if m.Rows < 0 || m.Cols < 0 || len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%w: width map %dx%d holds %d values", ErrShapeMismatch, m.Rows, m.Cols, len(m.Data))
	}
	return nil
}

// ScoreField is the per-frame grid of combined scores.
//
// Every cell belongs to exactly one decimation block. A block is either
// accepted, in which case all its cells hold the same score in [-510, 510],
// or rejected, in which case its cells hold 0 and are never candidates.
type ScoreField struct {
	rows     int
	cols     int
	rate     int
	scores   []int32
	accepted []bool
}

// NewScoreField allocates a field for a rows×cols frame scanned every rate pixels.
func NewScoreField(rows, cols, rate int) *ScoreField {
	if rate < 1 {
		rate = 1
	}
	return &ScoreField{
		rows:     rows,
		cols:     cols,
		rate:     rate,
		scores:   make([]int32, rows*cols),
		accepted: make([]bool, rows*cols),
	}
}

// Rows returns the number of rows of the field.
func (f *ScoreField) Rows() int { return f.rows }

// Cols returns the number of columns of the field.
func (f *ScoreField) Cols() int { return f.cols }

// Rate returns the decimation step of the field.
func (f *ScoreField) Rate() int { return f.rate }

// At returns the score of cell (x, y).
func (f *ScoreField) At(x, y int) int {
	return int(f.scores[y*f.cols+x])
}

// Accepted reports whether cell (x, y) belongs to an accepted block.
func (f *ScoreField) Accepted(x, y int) bool {
	return f.accepted[y*f.cols+x]
}

// fits reports whether the field can be reused for the given geometry.
func (f *ScoreField) fits(rows, cols, rate int) bool {
	return f != nil && f.rows == rows && f.cols == cols && f.rate == rate
}

// fill writes score into the half-open block [startX, endX) × [startY, endY),
// clipped to the field.
func (f *ScoreField) fill(score int, accepted bool, startX, endX, startY, endY int) {
	startX, endX = max(startX, 0), min(endX, f.cols)
	startY, endY = max(startY, 0), min(endY, f.rows)
	for y := startY; y < endY; y++ {
		row := y * f.cols
		for x := startX; x < endX; x++ {
			f.scores[row+x] = int32(score)
			f.accepted[row+x] = accepted
		}
	}
}

// Range returns the smallest and largest accepted score. When no block is
// accepted it returns the full [-510, 510] range.
func (f *ScoreField) Range() HeatMapRange {
	lo, hi := math.MaxInt32, math.MinInt32
	for i, ok := range f.accepted {
		if !ok {
			continue
		}
		s := int(f.scores[i])
		lo = min(lo, s)
		hi = max(hi, s)
	}
	if lo > hi {
		return HeatMapRange{Min: -MaxCombinedScore, Max: MaxCombinedScore}
	}
	return HeatMapRange{Min: float64(lo), Max: float64(hi)}
}
