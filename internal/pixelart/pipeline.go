package pixelart

import (
	"context"
	"image"
	"math"
)

// Render runs the full pipeline over src with the given parameter snapshot:
// downsample, optional levels, optional modulate, quantize, upsample.
//
// The output always has the exact dimensions of src. The original width and
// height are captured before downsampling and used verbatim for the final
// upsample; they are never re-derived from the pixelize percentage, which
// loses information to rounding on odd dimensions.
//
// Render is pure: it never mutates src, shares no state between calls, and
// produces byte-identical output for identical inputs. ctx is checked between
// stages so an in-flight render can be superseded; individual stages run to
// completion.
func Render(ctx context.Context, src image.Image, p Params) (*image.NRGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		return nil, ErrInvalidImage
	}

	scale := 1 - float64(p.Pixelize)/100
	downW := int(math.Round(float64(origW) * scale))
	downH := int(math.Round(float64(origH) * scale))

	img := Resample(src, downW, downH, ResampleArea)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Levels != nil {
		img = ApplyLevels(img, p.Levels.Black, p.Levels.White)
	}
	if p.Modulate != nil {
		img = ApplyModulate(img, p.Modulate.Brightness, p.Modulate.Saturation, p.Modulate.Hue)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img = Quantize(img, p.KColors)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Resample(img, origW, origH, ResampleNearest), nil
}
