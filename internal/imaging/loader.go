package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// FrameInfo describes a frame loaded from disk.
type FrameInfo struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LoadFrame decodes a PNG, JPEG or BMP frame from disk.
func LoadFrame(path string) (image.Image, *FrameInfo, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load frame: %w", err)
	}
	b := img.Bounds()
	return img, &FrameInfo{Path: path, Width: b.Dx(), Height: b.Dy()}, nil
}

// SaveImage encodes img to path. The format is chosen from the extension:
// ".jpg"/".jpeg" write JPEG, ".bmp" writes BMP, anything else writes PNG.
func SaveImage(path string, img image.Image) error {
	var encoder imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encoder = imgio.JPEGEncoder(95)
	case ".bmp":
		encoder = imgio.BMPEncoder()
	default:
		encoder = imgio.PNGEncoder()
	}
	if err := imgio.Save(path, img, encoder); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
