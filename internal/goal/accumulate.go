package goal

import (
	"image"
	"math"
	"sync"

	"github.com/ironsheep/goal-roi/internal/integral"
)

// maskState classifies the mask block under a decimation block.
type maskState int

const (
	maskEmpty maskState = iota
	maskPartial
	maskFilled
)

// maskSampler answers empty/partial/full queries on the field-border mask
// through the mask's integral image.
type maskSampler struct {
	ii     *integral.Image
	scaleX float64
	scaleY float64
}

// block classifies the mask pixels covering the frame block
// [x0, x1) × [y0, y1). At least one mask pixel is always sampled.
func (m *maskSampler) block(x0, x1, y0, y1 int) maskState {
	r := image.Rect(
		int(math.Floor(float64(x0)*m.scaleX)),
		int(math.Floor(float64(y0)*m.scaleY)),
		int(math.Ceil(float64(x1)*m.scaleX)),
		int(math.Ceil(float64(y1)*m.scaleY)),
	)
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	r = m.ii.Clamp(r)
	if r.Empty() {
		return maskEmpty
	}
	count := m.ii.Sum(r)
	switch {
	case count == 0:
		return maskEmpty
	case count == int64(r.Dx()*r.Dy()):
		return maskFilled
	}
	return maskPartial
}

// accumulator fills a ScoreField from one frame's inputs.
type accumulator struct {
	params *Params
	scorer Scorer
	widths *WidthMap
	mask   *maskSampler // nil when the mask is not used
	field  *ScoreField
}

// AccumulateStats counts what happened during one accumulation pass.
type AccumulateStats struct {
	Anchors  int `json:"anchors"`
	Accepted int `json:"accepted"`
	// MaskRejected counts anchors dropped because their mask block was empty.
	MaskRejected int `json:"mask_rejected"`
	// Relaxed counts accepted anchors that only passed thanks to FilledMaskMinWidth.
	Relaxed int `json:"relaxed"`
}

func (s *AccumulateStats) add(o AccumulateStats) {
	s.Anchors += o.Anchors
	s.Accepted += o.Accepted
	s.MaskRejected += o.MaskRejected
	s.Relaxed += o.Relaxed
}

// run scores every anchor, splitting anchor rows across workers goroutines.
func (a *accumulator) run(workers int) AccumulateStats {
	rate := a.params.DecimationRate
	anchorRows := (a.field.rows + rate - 1) / rate
	if workers < 1 {
		workers = 1
	}
	if workers > anchorRows {
		workers = anchorRows
	}
	if workers <= 1 {
		return a.rows(0, anchorRows)
	}

	stats := make([]AccumulateStats, workers)
	chunk := (anchorRows + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		first := w * chunk
		last := min(first+chunk, anchorRows)
		if first >= last {
			continue
		}
		wg.Add(1)
		go func(w, first, last int) {
			defer wg.Done()
			stats[w] = a.rows(first, last)
		}(w, first, last)
	}
	wg.Wait()

	var total AccumulateStats
	for _, s := range stats {
		total.add(s)
	}
	return total
}

// rows scores anchor rows [first, last), counted in decimation steps.
func (a *accumulator) rows(first, last int) AccumulateStats {
	var stats AccumulateStats
	rate := a.params.DecimationRate
	for ay := first; ay < last; ay++ {
		y := ay * rate
		for x := 0; x < a.field.cols; x += rate {
			stats.Anchors++
			a.anchor(x, y, &stats)
		}
	}
	return stats
}

// anchor decides whether (x, y) is scored and paints its block.
func (a *accumulator) anchor(x, y int, stats *AccumulateStats) {
	p := a.params
	rate := p.DecimationRate
	endX, endY := x+rate, y+rate

	width := a.widths.At(x, y)
	scaled := width * p.WidthScale
	minWidth := p.MinWidth
	if a.mask != nil {
		switch a.mask.block(x, min(endX, a.field.cols), y, min(endY, a.field.rows)) {
		case maskEmpty:
			stats.MaskRejected++
			a.field.fill(0, false, x, endX, y, endY)
			return
		case maskFilled:
			minWidth = p.FilledMaskMinWidth
		}
	}
	// Written as a negation so that NaN widths are rejected too.
	if !(scaled >= minWidth) {
		a.field.fill(0, false, x, endX, y, endY)
		return
	}
	if scaled < p.MinWidth {
		stats.Relaxed++
	}

	s := a.scorer.ScoreAnchor(p, x, y, width)
	a.field.fill(s.Combined, true, x, endX, y, endY)
	stats.Accepted++
}
