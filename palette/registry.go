package palette

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

//go:embed af_colours.yaml
var builtinDefinition []byte

// definition mirrors the YAML schema of af_colours.yaml.
type definition struct {
	Colours  map[string]string            `mapstructure:"colours"`
	Palettes map[string]paletteDefinition `mapstructure:"palettes"`
	RAG      map[string]ragDefinition     `mapstructure:"rag"`
}

type paletteDefinition struct {
	Alias   string           `mapstructure:"alias"`
	Colours []string         `mapstructure:"colours"`
	Stops   []stopDefinition `mapstructure:"stops"`
}

type stopDefinition struct {
	Position float64 `mapstructure:"position"`
	Colour   string  `mapstructure:"colour"`
}

type ragDefinition struct {
	Fill string `mapstructure:"fill"`
	Font string `mapstructure:"font"`
}

// RAGStatus pairs a red/amber/green fill with its high-contrast text colour.
type RAGStatus struct {
	Fill Colour
	Font Colour
}

// Registry is a read-only set of named palettes and AF colour values.
type Registry struct {
	palettes map[string]*Palette
	aliases  map[string]string
	colours  map[string]Colour
	rag      map[string]RAGStatus
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry, building it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = lo.Must(Builtin())
	})
	return defaultRegistry
}

// Resolve resolves against the built-in registry.
func Resolve(name string, format Format, count int) ([]Colour, error) {
	return Default().Resolve(name, format, count)
}

// Builtin builds a registry from the embedded definitions only.
func Builtin() (*Registry, error) {
	return Load("")
}

// Load builds a registry from the embedded definitions, then applies the YAML
// file at path over them when path is not empty. Each colour, palette and RAG
// status named in the file replaces the built-in entry of the same name as a
// whole. The file is read through the virtual filesystem.
func Load(path string) (*Registry, error) {
	def, err := readDefinition(func(v *viper.Viper) error {
		v.SetConfigType("yaml")
		return v.ReadConfig(bytes.NewReader(builtinDefinition))
	})
	if err != nil {
		return nil, fmt.Errorf("read builtin palettes: %w", err)
	}

	if path != "" {
		override, err := readDefinition(func(v *viper.Viper) error {
			v.SetFs(filesystem.API())
			v.SetConfigFile(path)
			return v.ReadInConfig()
		})
		if err != nil {
			return nil, fmt.Errorf("read palettes from %s: %w", path, err)
		}
		def.apply(override)
	}

	r, err := build(def)
	if err != nil {
		return nil, err
	}

	log.Debugf("palette: loaded %d palettes, %d colours (override %q)", len(r.palettes), len(r.colours), path)
	return r, nil
}

func readDefinition(read func(v *viper.Viper) error) (definition, error) {
	v := viper.New()
	if err := read(v); err != nil {
		return definition{}, err
	}

	var def definition
	if err := v.Unmarshal(&def); err != nil {
		return definition{}, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	return def, nil
}

// apply replaces entries of def with those named in override.
func (def *definition) apply(override definition) {
	if def.Colours == nil {
		def.Colours = make(map[string]string)
	}
	if def.Palettes == nil {
		def.Palettes = make(map[string]paletteDefinition)
	}
	if def.RAG == nil {
		def.RAG = make(map[string]ragDefinition)
	}

	for name, hex := range override.Colours {
		def.Colours[canonical(name)] = hex
	}
	for name, pd := range override.Palettes {
		def.Palettes[canonical(name)] = pd
	}
	for status, rd := range override.RAG {
		def.RAG[canonical(status)] = rd
	}
}

func build(def definition) (*Registry, error) {
	r := &Registry{
		palettes: make(map[string]*Palette),
		aliases:  make(map[string]string),
		colours:  make(map[string]Colour),
		rag:      make(map[string]RAGStatus),
	}

	for name, hex := range def.Colours {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: colour %s: %s", ErrInvalidDefinition, name, err)
		}
		r.colours[canonical(name)] = c
	}

	for name, pd := range def.Palettes {
		name = canonical(name)
		kinds := lo.Count([]bool{pd.Alias != "", len(pd.Colours) > 0, len(pd.Stops) > 0}, true)
		if kinds > 1 {
			return nil, fmt.Errorf("%w: palette %s must set only one of alias, colours or stops", ErrInvalidDefinition, name)
		}
		if pd.Alias != "" {
			r.aliases[name] = canonical(pd.Alias)
			continue
		}

		var (
			p   *Palette
			err error
		)
		if len(pd.Stops) > 0 {
			stops := make([]Stop, len(pd.Stops))
			for i, sd := range pd.Stops {
				c, cerr := r.colour(sd.Colour)
				if cerr != nil {
					return nil, fmt.Errorf("%w: palette %s: %s", ErrInvalidDefinition, name, cerr)
				}
				stops[i] = Stop{Position: sd.Position, Colour: c}
			}
			p, err = newGradient(name, stops)
		} else {
			colours := make([]Colour, len(pd.Colours))
			for i, ref := range pd.Colours {
				c, cerr := r.colour(ref)
				if cerr != nil {
					return nil, fmt.Errorf("%w: palette %s: %s", ErrInvalidDefinition, name, cerr)
				}
				colours[i] = c
			}
			p, err = newDiscrete(name, colours)
		}
		if err != nil {
			return nil, err
		}
		r.palettes[name] = p
	}

	for alias, target := range r.aliases {
		if _, ok := r.palettes[target]; !ok {
			return nil, fmt.Errorf("%w: alias %s points to unknown palette %s", ErrInvalidDefinition, alias, target)
		}
	}

	for status, rd := range def.RAG {
		fill, err := r.colour(rd.Fill)
		if err != nil {
			return nil, fmt.Errorf("%w: rag %s: %s", ErrInvalidDefinition, status, err)
		}
		font, err := r.colour(rd.Font)
		if err != nil {
			return nil, fmt.Errorf("%w: rag %s: %s", ErrInvalidDefinition, status, err)
		}
		r.rag[canonical(status)] = RAGStatus{Fill: fill, Font: font}
	}

	return r, nil
}

// colour resolves a reference that is either a named AF colour or a hex literal.
func (r *Registry) colour(ref string) (Colour, error) {
	if c, ok := r.colours[canonical(ref)]; ok {
		return c, nil
	}
	if strings.HasPrefix(strings.TrimSpace(ref), "#") {
		return ParseHex(ref)
	}
	return Colour{}, fmt.Errorf("unknown colour %q", ref)
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Palette looks a palette up by name, following aliases.
func (r *Registry) Palette(name string) (*Palette, bool) {
	name = canonical(name)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	p, ok := r.palettes[name]
	return p, ok
}

// Names lists every registered palette name, aliases included, sorted.
func (r *Registry) Names() []string {
	names := append(lo.Keys(r.palettes), lo.Keys(r.aliases)...)
	sort.Strings(names)
	return names
}

// Resolve returns count colours of the named palette rendered in format.
//
// A request for exactly two categorical colours is served from the duo
// palette.
func (r *Registry) Resolve(name string, format Format, count int) ([]Colour, error) {
	p, ok := r.Palette(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrInvalidPalette, name, strings.Join(r.Names(), ", "))
	}

	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	if count == 2 && canonical(name) == Categorical {
		if duo, ok := r.palettes[Duo]; ok {
			p = duo
		}
	}

	colours, err := p.Colours(count)
	if err != nil {
		return nil, err
	}

	return lo.Map(colours, func(c Colour, _ int) Colour {
		return c.In(f)
	}), nil
}

// Named returns an AF colour value such as "dark_blue" or "chart_features".
func (r *Registry) Named(name string) (Colour, bool) {
	c, ok := r.colours[canonical(name)]
	return c, ok
}

// ColourNames lists the named AF colour values, sorted.
func (r *Registry) ColourNames() []string {
	names := lo.Keys(r.colours)
	sort.Strings(names)
	return names
}

// RAG returns the fill and text colours for a Green, Amber or Red status.
func (r *Registry) RAG(status string) (RAGStatus, bool) {
	s, ok := r.rag[canonical(status)]
	return s, ok
}
