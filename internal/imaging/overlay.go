package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/ironsheep/goal-roi/internal/goal"
)

// DrawROIs draws every ROI square over a copy of frame, labelled with its score.
//
// Parameters:
//   - frame: The source frame. It is not modified.
//   - rois: ROIs in frame coordinates (0-based, relative to frame.Bounds().Min).
//   - colorHex: Outline color as "#RRGGBB" or "#RRGGBBAA". Invalid values
//     fall back to opaque yellow.
//
// Returns an RGBA image with the same bounds as frame. Parts of a square
// falling outside the frame are not drawn.
func DrawROIs(frame image.Image, rois []goal.ROI, colorHex string) *image.RGBA {
	bounds := frame.Bounds()

	outline, err := parseHexColor(colorHex)
	if err != nil {
		outline = color.RGBA{255, 255, 0, 255}
	}

	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, frame, bounds.Min, draw.Src)

	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}
	for _, roi := range rois {
		r := roi.Bounds().Add(bounds.Min)
		drawOutline(result, r, outline)
		drawLabel(result, r.Min.X+2, r.Min.Y+2, strconv.Itoa(roi.Score), labelColor, bgColor)
	}
	return result
}

// drawOutline draws the 1-pixel border of r, clipped to img.
func drawOutline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	bounds := img.Bounds()
	for x := r.Min.X; x < r.Max.X; x++ {
		setClipped(img, bounds, x, r.Min.Y, c)
		setClipped(img, bounds, x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		setClipped(img, bounds, r.Min.X, y, c)
		setClipped(img, bounds, r.Max.X-1, y, c)
	}
}

func setClipped(img *image.RGBA, bounds image.Rectangle, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(bounds) {
		img.SetRGBA(x, y, c)
	}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// scoreGlyphs is a 3x5 pixel font covering signed integers
var scoreGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'-': {"000", "000", "111", "000", "000"},
}

// drawLabel draws a small text label with its top-left corner at (x, y)
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	// Background
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setClipped(img, bounds, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := scoreGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setClipped(img, bounds, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
