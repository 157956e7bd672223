// Package palette resolves the Analysis Function colour palettes into ordered colour sequences.
//
// Palettes are either discrete (a fixed, ordered list of brand colours) or
// gradients (sparse position/colour stops sampled to any number of colours).
// The built-in definitions live in an embedded YAML document and are loaded
// into a Registry exactly once.
package palette

import (
	"errors"
	"fmt"
)

// Validation failures reported by Resolve. Callers match them with errors.Is.
var (
	ErrInvalidPalette    = errors.New("invalid palette")
	ErrInvalidFormat     = errors.New("invalid colour format")
	ErrInvalidCount      = errors.New("invalid number of colours")
	ErrInvalidDefinition = errors.New("invalid palette definition")
)

// Registered palette names.
const (
	Main            = "main"
	Duo             = "duo"
	Categorical     = "categorical"
	Sequential      = "sequential"
	SequentialMinus = "sequential_minus"
	Diverging       = "diverging"
	RAGPalette      = "rag"
)

// Kind distinguishes discrete palettes from gradients.
type Kind int

const (
	Discrete Kind = iota
	Gradient
)

func (k Kind) String() string {
	if k == Gradient {
		return "gradient"
	}
	return "discrete"
}

// Stop is a single gradient anchor.
type Stop struct {
	Position float64
	Colour   Colour
}

// Palette is an immutable, named colour sequence.
type Palette struct {
	name    string
	kind    Kind
	colours []Colour
	stops   []Stop
}

// Name returns the registered name.
func (p *Palette) Name() string {
	return p.name
}

// Kind reports whether the palette is discrete or a gradient.
func (p *Palette) Kind() Kind {
	return p.kind
}

// Max returns the largest number of colours the palette can produce.
// Gradients are unbounded and report false.
func (p *Palette) Max() (int, bool) {
	if p.kind == Gradient {
		return 0, false
	}
	return len(p.colours), true
}

// Stops returns a copy of the gradient stops; nil for discrete palettes.
func (p *Palette) Stops() []Stop {
	if p.kind != Gradient {
		return nil
	}
	return append([]Stop(nil), p.stops...)
}

// Colours returns the first count colours in hex format, sampling gradients
// at count evenly spaced positions.
func (p *Palette) Colours(count int) ([]Colour, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d requested from %s, need at least 1", ErrInvalidCount, count, p.name)
	}

	if p.kind == Discrete {
		if count > len(p.colours) {
			return nil, fmt.Errorf("%w: %d requested from %s, maximum is %d", ErrInvalidCount, count, p.name, len(p.colours))
		}
		return append([]Colour(nil), p.colours[:count]...), nil
	}

	out := make([]Colour, count)
	for i := range out {
		var t float64
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		out[i] = p.At(t)
	}
	return out, nil
}

// At samples a gradient at position t, clamped to [0, 1]. Discrete palettes
// are treated as evenly spaced stops.
func (p *Palette) At(t float64) Colour {
	stops := p.stops
	if p.kind == Discrete {
		stops = evenStops(p.colours)
	}

	if t <= stops[0].Position {
		return stops[0].Colour
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Colour
	}

	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if t > hi.Position {
			continue
		}
		return blend(lo.Colour, hi.Colour, (t-lo.Position)/(hi.Position-lo.Position))
	}
	return last.Colour
}

func evenStops(colours []Colour) []Stop {
	stops := make([]Stop, len(colours))
	for i, c := range colours {
		var pos float64
		if len(colours) > 1 {
			pos = float64(i) / float64(len(colours)-1)
		}
		stops[i] = Stop{Position: pos, Colour: c}
	}
	return stops
}

func newDiscrete(name string, colours []Colour) (*Palette, error) {
	if len(colours) == 0 {
		return nil, fmt.Errorf("%w: %s has no colours", ErrInvalidDefinition, name)
	}
	return &Palette{name: name, kind: Discrete, colours: colours}, nil
}

func newGradient(name string, stops []Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: %s needs at least two stops", ErrInvalidDefinition, name)
	}
	if stops[0].Position != 0 || stops[len(stops)-1].Position != 1 {
		return nil, fmt.Errorf("%w: %s stops must span 0 to 1", ErrInvalidDefinition, name)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Position <= stops[i-1].Position {
			return nil, fmt.Errorf("%w: %s stop positions must increase", ErrInvalidDefinition, name)
		}
	}
	return &Palette{name: name, kind: Gradient, stops: stops}, nil
}
