package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/goal-roi/internal/goal"
)

// FieldMask approximates the field-border mask from a green mask.
//
// For every column, the field starts at the first row followed by minRun
// consecutive green pixels; that row and everything below it is foreground.
// Columns without such a run are empty. The result is scale times larger
// than green on both axes.
func FieldMask(green *image.Gray, scale, minRun int) (*image.Gray, error) {
	if scale < 1 {
		return nil, fmt.Errorf("mask scale must be >= 1, got %d", scale)
	}
	if minRun < 1 {
		minRun = 1
	}
	b := green.Bounds()
	width, height := b.Dx(), b.Dy()
	mask := image.NewGray(image.Rect(0, 0, width*scale, height*scale))

	for x := 0; x < width; x++ {
		top := fieldTop(green, x, minRun)
		if top < 0 {
			continue
		}
		for y := top * scale; y < height*scale; y++ {
			row := mask.Pix[y*mask.Stride:]
			for dx := 0; dx < scale; dx++ {
				row[x*scale+dx] = 255
			}
		}
	}
	return mask, nil
}

// fieldTop returns the first row of column x starting minRun green pixels, or -1.
func fieldTop(green *image.Gray, x, minRun int) int {
	b := green.Bounds()
	run := 0
	for y := 0; y < b.Dy(); y++ {
		if green.Pix[y*green.Stride+x] != 0 {
			run++
			if run == minRun {
				return y - minRun + 1
			}
		} else {
			run = 0
		}
	}
	return -1
}

// WidthModel predicts the apparent post width from the image row: posts
// close to the robot appear at the bottom of the frame and wider.
type WidthModel struct {
	// TopWidth is the expected width, in pixels, on the first row.
	TopWidth float64 `toml:"top_width" json:"top_width"`
	// BottomWidth is the expected width, in pixels, on the last row.
	BottomWidth float64 `toml:"bottom_width" json:"bottom_width"`
}

// WidthMap interpolates the model linearly over a rows×cols frame.
func (m WidthModel) WidthMap(rows, cols int) *goal.WidthMap {
	widths := goal.NewWidthMap(rows, cols)
	for y := 0; y < rows; y++ {
		w := m.TopWidth
		if rows > 1 {
			w += (m.BottomWidth - m.TopWidth) * float64(y) / float64(rows-1)
		}
		for x := 0; x < cols; x++ {
			widths.Set(x, y, w)
		}
	}
	return widths
}
