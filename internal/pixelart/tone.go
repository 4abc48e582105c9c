package pixelart

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ApplyLevels remaps the color channels linearly between a black point and a
// white point, each given as a percentage of the 0-255 range.
//
// For white > black this is the usual contrast stretch; for white < black the
// same formula yields an inverted-tone result. When white == black the remap
// degenerates to a threshold: channels at or above the black point become
// 255, everything below becomes 0. Alpha is untouched.
func ApplyLevels(img *image.NRGBA, blackPct, whitePct int) *image.NRGBA {
	black := float64(blackPct) / 100 * 255
	white := float64(whitePct) / 100 * 255

	var lut [256]uint8
	if white == black {
		for i := range lut {
			if float64(i) >= black {
				lut[i] = 255
			}
		}
	} else {
		scale := 255 / (white - black)
		for i := range lut {
			lut[i] = clampChannel(math.Round((float64(i) - black) * scale))
		}
	}

	out := image.NewNRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		out.Pix[i] = lut[img.Pix[i]]
		out.Pix[i+1] = lut[img.Pix[i+1]]
		out.Pix[i+2] = lut[img.Pix[i+2]]
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// ApplyModulate adjusts brightness, saturation and hue in HSL space.
// Brightness multiplies lightness by brightnessPct/100, saturation multiplies
// by saturationPct/100, and hue rotates by (huePct-100)*3.6 degrees, so 100
// is the identity for all three. Alpha is untouched.
func ApplyModulate(img *image.NRGBA, brightnessPct, saturationPct, huePct int) *image.NRGBA {
	brightness := float64(brightnessPct) / 100
	saturation := float64(saturationPct) / 100
	rotation := float64(huePct-100) * 3.6

	out := image.NewNRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		c := colorful.Color{
			R: float64(img.Pix[i]) / 255,
			G: float64(img.Pix[i+1]) / 255,
			B: float64(img.Pix[i+2]) / 255,
		}
		h, s, l := c.Hsl()

		h = math.Mod(h+rotation, 360)
		if h < 0 {
			h += 360
		}
		s = clampUnit(s * saturation)
		l = clampUnit(l * brightness)

		c = colorful.Hsl(h, s, l).Clamped()
		out.Pix[i] = clampChannel(math.Round(c.R * 255))
		out.Pix[i+1] = clampChannel(math.Round(c.G * 255))
		out.Pix[i+2] = clampChannel(math.Round(c.B * 255))
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
