package goal

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/ironsheep/goal-roi/internal/integral"
)

// createClassifiedFrame builds white and green integral images from rows of
// 'W' (white), 'G' (green) or any other byte (neither)
func createClassifiedFrame(t *testing.T, rows ...string) (*integral.Image, *integral.Image) {
	t.Helper()
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	white := image.NewGray(image.Rect(0, 0, width, height))
	green := image.NewGray(image.Rect(0, 0, width, height))
	for y, row := range rows {
		if len(row) != width {
			t.Fatalf("row %d has %d columns, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case 'W':
				white.SetGray(x, y, color.Gray{255})
			case 'G':
				green.SetGray(x, y, color.Gray{255})
			}
		}
	}
	return integral.FromGray(white), integral.FromGray(green)
}

// createRandomFrame builds a random classification of the given size
func createRandomFrame(t *testing.T, width, height int, seed int64) (*integral.Image, *integral.Image) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([]string, height)
	for y := range rows {
		b := make([]byte, width)
		for x := range b {
			b[x] = "WG."[rng.Intn(3)]
		}
		rows[y] = string(b)
	}
	return createClassifiedFrame(t, rows...)
}

// constWidths creates a width map holding w everywhere
func constWidths(width, height int, w float64) *WidthMap {
	m := NewWidthMap(height, width)
	for i := range m.Data {
		m.Data[i] = float32(w)
	}
	return m
}

// createMask creates a mask of the given size with the listed rectangles set
func createMask(width, height int, filled ...image.Rectangle) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for _, r := range filled {
		r = r.Intersect(mask.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.SetGray(x, y, color.Gray{255})
			}
		}
	}
	return mask
}

// scenarioParams are the parameters of the single-post scenarios
func scenarioParams() Params {
	p := DefaultParams()
	p.WidthScale = 1
	p.AboveRatio = 1
	p.BelowRatio = 1
	p.SideCoeff = 0
	p.BelowCoeff = 1
	p.DecimationRate = 1
	p.MinWidth = 0
	p.MinScore = -1000
	p.MaxRois = 1
	return p
}
