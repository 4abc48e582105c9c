package pixelart

import (
	"errors"
	"fmt"
)

// ErrInvalidImage is returned when the source image has no pixels.
var ErrInvalidImage = errors.New("invalid image: zero-size source")

// ErrInvalidParams wraps all parameter range violations. Use errors.Is to
// detect them.
var ErrInvalidParams = errors.New("invalid parameters")

// Levels holds the black/white points of a linear levels remap, each as a
// percentage of the 0-255 channel range. White is normally above black, but
// an inverted pair is accepted and produces an inverted-tone result.
type Levels struct {
	Black int `json:"black"` // Black point: 0-100 percent
	White int `json:"white"` // White point: 0-100 percent
}

// Modulate holds brightness/saturation/hue modulation factors. 100 is the
// identity for each. Hue is a rotation: 100 units of offset from neutral
// equals a full 360-degree turn.
type Modulate struct {
	Brightness int `json:"brightness"` // Lightness multiplier: 0-200, 100 = identity
	Saturation int `json:"saturation"` // Saturation multiplier: 0-200, 100 = identity
	Hue        int `json:"hue"`        // Hue rotation: 0-200, 100 = no rotation
}

// Params is the immutable parameter snapshot for one pipeline run.
//
// A nil Levels or Modulate disables that stage entirely: the buffer passes
// through untouched rather than going through an identity transform, so a
// disabled stage is bit-exact.
type Params struct {
	// Pixelize is the percentage shrink applied before quantization:
	// 0-99, larger values produce bigger visible blocks.
	Pixelize int `json:"pixelize"`

	// KColors is the target palette size for quantization: 1-64.
	KColors int `json:"kcolors"`

	// Levels enables the linear levels remap when non-nil.
	Levels *Levels `json:"levels,omitempty"`

	// Modulate enables brightness/saturation/hue modulation when non-nil.
	Modulate *Modulate `json:"modulate,omitempty"`
}

// Validate checks all parameter ranges. It reports the first violation,
// wrapped so that errors.Is(err, ErrInvalidParams) holds.
//
// An inverted levels pair (white < black) is deliberately NOT a violation:
// the UI lets the sliders cross, and the pipeline defines the result.
func (p Params) Validate() error {
	if p.Pixelize < 0 || p.Pixelize > 99 {
		return fmt.Errorf("%w: pixelize %d out of range 0-99", ErrInvalidParams, p.Pixelize)
	}
	if p.KColors < 1 || p.KColors > 64 {
		return fmt.Errorf("%w: kcolors %d out of range 1-64", ErrInvalidParams, p.KColors)
	}
	if l := p.Levels; l != nil {
		if l.Black < 0 || l.Black > 100 {
			return fmt.Errorf("%w: levels black %d out of range 0-100", ErrInvalidParams, l.Black)
		}
		if l.White < 0 || l.White > 100 {
			return fmt.Errorf("%w: levels white %d out of range 0-100", ErrInvalidParams, l.White)
		}
	}
	if m := p.Modulate; m != nil {
		if m.Brightness < 0 || m.Brightness > 200 {
			return fmt.Errorf("%w: modulate brightness %d out of range 0-200", ErrInvalidParams, m.Brightness)
		}
		if m.Saturation < 0 || m.Saturation > 200 {
			return fmt.Errorf("%w: modulate saturation %d out of range 0-200", ErrInvalidParams, m.Saturation)
		}
		if m.Hue < 0 || m.Hue > 200 {
			return fmt.Errorf("%w: modulate hue %d out of range 0-200", ErrInvalidParams, m.Hue)
		}
	}
	return nil
}
