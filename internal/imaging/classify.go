package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Classifier holds the HSV thresholds separating white and green pixels.
//
// Hue is in degrees (0-360); saturation and value are in 0-1.
type Classifier struct {
	WhiteMinValue      float64 `toml:"white_min_value" json:"white_min_value"`
	WhiteMaxSaturation float64 `toml:"white_max_saturation" json:"white_max_saturation"`

	GreenMinHue        float64 `toml:"green_min_hue" json:"green_min_hue"`
	GreenMaxHue        float64 `toml:"green_max_hue" json:"green_max_hue"`
	GreenMinSaturation float64 `toml:"green_min_saturation" json:"green_min_saturation"`
	GreenMinValue      float64 `toml:"green_min_value" json:"green_min_value"`

	// SmoothRadius is the Gaussian blur radius applied to both masks before
	// re-thresholding them at half intensity. 0 disables smoothing.
	SmoothRadius float64 `toml:"smooth_radius" json:"smooth_radius"`
}

// DefaultClassifier returns thresholds suited to a lit indoor field.
func DefaultClassifier() Classifier {
	return Classifier{
		WhiteMinValue:      0.75,
		WhiteMaxSaturation: 0.2,
		GreenMinHue:        70,
		GreenMaxHue:        170,
		GreenMinSaturation: 0.25,
		GreenMinValue:      0.15,
		SmoothRadius:       0,
	}
}

// Classification holds the binary white and green masks of a frame.
type Classification struct {
	White *image.Gray
	Green *image.Gray
}

// Classify labels every pixel of img as white, green or neither.
// Fully transparent pixels are neither.
func (c Classifier) Classify(img image.Image) *Classification {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	white := image.NewGray(image.Rect(0, 0, width, height))
	green := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			col, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				continue
			}
			switch c.label(col) {
			case labelWhite:
				white.SetGray(x, y, color.Gray{255})
			case labelGreen:
				green.SetGray(x, y, color.Gray{255})
			}
		}
	}

	if c.SmoothRadius > 0 {
		white = smooth(white, c.SmoothRadius)
		green = smooth(green, c.SmoothRadius)
	}
	return &Classification{White: white, Green: green}
}

type pixelLabel int

const (
	labelNone pixelLabel = iota
	labelWhite
	labelGreen
)

func (c Classifier) label(col colorful.Color) pixelLabel {
	h, s, v := col.Hsv()
	if v >= c.WhiteMinValue && s <= c.WhiteMaxSaturation {
		return labelWhite
	}
	if h >= c.GreenMinHue && h <= c.GreenMaxHue && s >= c.GreenMinSaturation && v >= c.GreenMinValue {
		return labelGreen
	}
	return labelNone
}

// smooth removes isolated pixels and fills small holes of a binary mask.
func smooth(mask *image.Gray, radius float64) *image.Gray {
	return segment.Threshold(blur.Gaussian(mask, radius), 128)
}
