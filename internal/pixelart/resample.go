package pixelart

import (
	"image"

	"github.com/disintegration/imaging"
)

// ResampleMode selects the resampling filter.
type ResampleMode int

const (
	// ResampleArea averages the source pixels whose footprint maps onto each
	// output pixel (box filter). Used for the downsample stage; the averaging
	// anti-aliases before quantization so k-means sees clean block colors.
	ResampleArea ResampleMode = iota

	// ResampleNearest copies the nearest source pixel without interpolation.
	// Used for the upsample stage; this is what produces hard block edges.
	ResampleNearest
)

// Resample scales img to width x height with the given mode.
// Targets below 1 clamp to 1, so a degenerate shrink can never produce a
// zero-size buffer or a division by zero.
func Resample(img image.Image, width, height int, mode ResampleMode) *image.NRGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	filter := imaging.Box
	if mode == ResampleNearest {
		filter = imaging.NearestNeighbor
	}
	return imaging.Resize(img, width, height, filter)
}
