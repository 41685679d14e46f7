package goal

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HeatMapRange anchors the heat-map gradient.
type HeatMapRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var (
	heatNeutral  = colorful.Color{R: 0, G: 0, B: 0}
	heatNegative = colorful.Color{R: 0, G: 0, B: 1}
	heatPositive = colorful.Color{R: 1, G: 0, B: 0}

	// rejected blocks are drawn apart from a genuine score of 0
	heatRejected = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// HeatColor maps a score onto the two-tone gradient: 0 is black, negative
// scores fade toward blue and reach full blue at r.Min, positive scores fade
// toward red and reach full red at r.Max. Scores beyond the range saturate.
func HeatColor(score float64, r HeatMapRange) color.RGBA {
	var c colorful.Color
	switch {
	case score < 0 && r.Min < 0:
		c = heatNeutral.BlendRgb(heatNegative, clampFloat(score/r.Min, 0, 1))
	case score > 0 && r.Max > 0:
		c = heatNeutral.BlendRgb(heatPositive, clampFloat(score/r.Max, 0, 1))
	default:
		c = heatNeutral
	}
	cr, cg, cb := c.Clamped().RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}

// RenderHeatMap draws every cell of field with HeatColor. The image has the
// same size as the field. Cells of rejected blocks are dark gray.
func RenderHeatMap(field *ScoreField, r HeatMapRange) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, field.cols, field.rows))
	for y := 0; y < field.rows; y++ {
		for x := 0; x < field.cols; x++ {
			if !field.Accepted(x, y) {
				img.SetRGBA(x, y, heatRejected)
				continue
			}
			img.SetRGBA(x, y, HeatColor(float64(field.At(x, y)), r))
		}
	}
	return img
}
