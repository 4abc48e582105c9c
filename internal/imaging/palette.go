package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/histogram"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. The native color is read
// from the image and converted to 8-bit components; for 16-bit images values
// are scaled down by right-shifting 8 bits.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  rgbToHSL(r8, g8, b8),
	}, nil
}

// PaletteEntry represents one distinct color and its occurrence count.
type PaletteEntry struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB"
	RGB        RGBColor `json:"rgb"`        // RGB components
	Count      int      `json:"count"`      // Number of pixels with this exact color
	Percentage float64  `json:"percentage"` // Percentage of total pixels (0-100)
}

// ChannelSpread summarizes the occupied range of each color channel,
// computed from per-channel histograms.
type ChannelSpread struct {
	RMin int `json:"r_min"`
	RMax int `json:"r_max"`
	GMin int `json:"g_min"`
	GMax int `json:"g_max"`
	BMin int `json:"b_min"`
	BMax int `json:"b_max"`
}

// PaletteResult contains the exact color census of an image.
//
// Colors are sorted by frequency in descending order (ties broken by hex
// value, so the census is stable). DistinctColors is the total number of
// distinct colors in the image even when the Colors list is truncated; for a
// quantized rendering it is bounded by the K parameter the render ran with.
type PaletteResult struct {
	Colors         []PaletteEntry `json:"colors"`          // Colors sorted by frequency (descending)
	DistinctColors int            `json:"distinct_colors"` // Total distinct colors, ignoring alpha
	Channels       ChannelSpread  `json:"channels"`        // Occupied range per channel
}

// Palette performs an exact distinct-color census of an image, ignoring
// alpha. Unlike approximate dominant-color extraction, nothing is bucketed:
// pixel-art output has few colors by construction and the exact census is
// what verifies the palette bound.
//
// At most maxColors entries are returned (but DistinctColors always reports
// the true total). maxColors <= 0 means no truncation.
func Palette(img image.Image, maxColors int) (*PaletteResult, error) {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels == 0 {
		return nil, fmt.Errorf("cannot analyze zero-size image")
	}

	counts := make(map[uint32]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
			counts[key]++
		}
	}

	colors := make([]PaletteEntry, 0, len(counts))
	for key, cnt := range counts {
		r := uint8(key >> 16)
		g := uint8(key >> 8)
		b := uint8(key)
		colors = append(colors, PaletteEntry{
			Hex:        fmt.Sprintf("#%02X%02X%02X", r, g, b),
			RGB:        RGBColor{R: r, G: g, B: b},
			Count:      cnt,
			Percentage: float64(cnt) / float64(totalPixels) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Hex < colors[j].Hex
	})

	distinct := len(colors)
	if maxColors > 0 && len(colors) > maxColors {
		colors = colors[:maxColors]
	}

	return &PaletteResult{
		Colors:         colors,
		DistinctColors: distinct,
		Channels:       channelSpread(img),
	}, nil
}

// channelSpread finds the lowest and highest occupied bin per color channel.
func channelSpread(img image.Image) ChannelSpread {
	h := histogram.NewRGBAHistogram(img)
	rMin, rMax := binRange(h.R.Bins)
	gMin, gMax := binRange(h.G.Bins)
	bMin, bMax := binRange(h.B.Bins)
	return ChannelSpread{
		RMin: rMin, RMax: rMax,
		GMin: gMin, GMax: gMax,
		BMin: bMin, BMax: bMax,
	}
}

func binRange(bins []int) (min, max int) {
	min, max = -1, -1
	for i, n := range bins {
		if n == 0 {
			continue
		}
		if min < 0 {
			min = i
		}
		max = i
	}
	return min, max
}

// rgbToHSL converts 8-bit RGB values to HSL color space using the standard
// algorithm: normalize to 0-1, lightness from the min/max components,
// saturation relative to lightness, hue from the dominant component.
func rgbToHSL(r, g, b uint8) HSLColor {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}

	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2.0

	if max == min {
		return HSLColor{H: 0, S: 0, L: int(l * 100)}
	}

	var s float64
	if l < 0.5 {
		s = (max - min) / (max + min)
	} else {
		s = (max - min) / (2.0 - max - min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / (max - min)
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/(max-min)
	case bf:
		h = 4.0 + (rf-gf)/(max-min)
	}
	h *= 60

	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
