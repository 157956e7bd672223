package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Format is the representation a resolved colour is rendered in.
type Format string

const (
	// Hex renders colours as "#RRGGBB".
	Hex Format = "hex"
	// RGB renders colours as a normalized (r, g, b) triplet.
	RGB Format = "rgb"
)

// Formats returns every supported output format.
func Formats() []Format {
	return []Format{Hex, RGB}
}

// ParseFormat validates a format identifier.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Hex, RGB:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of %s, %s)", ErrInvalidFormat, s, Hex, RGB)
	}
}

// Colour is an 8-bit precise colour bound to the format it renders in.
type Colour struct {
	value  colorful.Color
	format Format
}

// ParseHex parses "#RRGGBB" (or "#RGB") into a hex formatted Colour.
func ParseHex(s string) (Colour, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return Colour{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return Colour{value: quantise(c), format: Hex}, nil
}

// FromRGB builds a Colour from normalized channels, each within [0, 1].
func FromRGB(r, g, b float64) (Colour, error) {
	c := colorful.Color{R: r, G: g, B: b}
	if !c.IsValid() {
		return Colour{}, fmt.Errorf("rgb channels out of range: (%g, %g, %g)", r, g, b)
	}
	return Colour{value: quantise(c), format: RGB}, nil
}

// quantise snaps every channel to the nearest 8-bit step so that hex and rgb
// forms of the same colour always compare equal.
func quantise(c colorful.Color) colorful.Color {
	c = c.Clamped()
	step := func(v float64) float64 { return math.Round(v*255) / 255 }
	return colorful.Color{R: step(c.R), G: step(c.G), B: step(c.B)}
}

// In returns the same colour rendered in another format.
func (c Colour) In(f Format) Colour {
	c.format = f
	return c
}

// Format reports the format the colour renders in.
func (c Colour) Format() Format {
	if c.format == "" {
		return Hex
	}
	return c.format
}

// Hex returns the upper case "#RRGGBB" form.
func (c Colour) Hex() string {
	return strings.ToUpper(c.value.Hex())
}

// RGB returns the normalized channels.
func (c Colour) RGB() (r, g, b float64) {
	return c.value.R, c.value.G, c.value.B
}

// RGBA renders a CSS style rgba() string, used for translucent area fills.
func (c Colour) RGBA(alpha float64) string {
	r, g, b := c.value.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, math.Max(0, math.Min(1, alpha)))
}

// String renders the colour in its bound format.
func (c Colour) String() string {
	if c.Format() == RGB {
		r, g, b := c.RGB()
		return fmt.Sprintf("(%.4f, %.4f, %.4f)", r, g, b)
	}
	return c.Hex()
}

// MarshalText renders the colour for JSON and YAML encoders.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// blend interpolates linearly in each RGB channel.
func blend(a, b Colour, t float64) Colour {
	return Colour{value: quantise(a.value.BlendRgb(b.value, t)), format: a.format}
}
