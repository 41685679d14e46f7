package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/goal-roi/internal/goal"
)

// ROICrop is the part of a frame covered by one ROI.
type ROICrop struct {
	ROI   goal.ROI
	Image image.Image
	// Region is the cropped frame region, i.e. the ROI clamped to the frame.
	Region image.Rectangle
}

// CropROIs extracts the frame region of every ROI.
//
// ROI squares are clamped to the frame; ROIs lying entirely outside it are
// skipped. When scale is positive and not 1, crops are resized with Lanczos
// resampling, which helps when inspecting small, distant posts.
func CropROIs(frame image.Image, rois []goal.ROI, scale float64) []ROICrop {
	bounds := frame.Bounds()
	crops := make([]ROICrop, 0, len(rois))
	for _, roi := range rois {
		region := roi.Bounds().Add(bounds.Min).Intersect(bounds)
		if region.Empty() {
			continue
		}

		cropped := imaging.Crop(frame, region)
		if scale != 1.0 && scale > 0 {
			newWidth := max(int(float64(cropped.Bounds().Dx())*scale), 1)
			newHeight := max(int(float64(cropped.Bounds().Dy())*scale), 1)
			cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
		}

		crops = append(crops, ROICrop{ROI: roi, Image: cropped, Region: region})
	}
	return crops
}

// Upscale enlarges img by an integer factor without interpolation, so that
// decimation blocks of a heat-map stay crisp.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}
