// Package chart builds plotting-library agnostic figure descriptions in the Analysis Function style.
//
// Builders resolve trace colours from the palette registry and derive a
// single format.Decision for every value on the figure. Rendering is left to
// whichever front end consumes the JSON.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/afcharts/afcharts/format"
	"github.com/afcharts/afcharts/log"
	"github.com/afcharts/afcharts/palette"
	"github.com/afcharts/afcharts/series"
	"github.com/invopop/jsonschema"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Type names a chart builder.
type Type string

const (
	Line             Type = "line"
	Bar              Type = "bar"
	Column           Type = "column"
	Pie              Type = "pie"
	SingleStackedBar Type = "stacked"
	Waterfall        Type = "waterfall"
)

// Types lists every chart type.
func Types() []Type {
	return []Type{Line, Bar, Column, Pie, SingleStackedBar, Waterfall}
}

// Named AF colours given to overlay roles.
const (
	primaryColour   = "dark_blue"
	secondaryColour = "orange"
	targetColour    = "dark_grey"
	featureColour   = "chart_features"
	bandColour      = "rag_red"
	bandAlpha       = 0.1
)

// DefaultAreaName labels the range band when Options.AreaName is empty.
const DefaultAreaName = "Range"

// ParseType validates a chart type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Types(), t) {
		return "", fmt.Errorf("unknown chart type %q (expected one of %s)", s, strings.Join(lo.Map(Types(), func(t Type, _ int) string { return string(t) }), ", "))
	}
	return t, nil
}

// Options tune a builder. The zero value is usable.
type Options struct {
	// Unit is the free text unit hint, e.g. "%" or "£m".
	Unit string
	// Palette defaults to categorical.
	Palette string
	// Stacked stacks bars instead of grouping them.
	Stacked bool
	// Timeline keeps the input row order instead of sorting by value.
	Timeline bool
	// RAG colours series (or pie slices) by their Green/Amber/Red name.
	RAG bool
	// LabelWidth wraps category labels at this many characters; 0 disables wrapping.
	LabelWidth int
	// Range fixes the value axis, in raw units.
	Range []float64
	// Targets are columns drawn as dashed target lines rather than series.
	// Overlay columns are drawn on line charts, targets on column charts too;
	// other chart types leave them out.
	Targets []string
	// Forecasts are dashed line chart columns coloured like the series they extend.
	Forecasts []string
	// Trajectories are dashed line chart columns in the secondary colour.
	Trajectories []string
	// AreaLower and AreaUpper bound a shaded range band on a line chart.
	AreaLower string
	AreaUpper string
	// AreaName labels the band.
	AreaName string
	// Registry defaults to palette.Default().
	Registry *palette.Registry
}

func (o Options) registry() *palette.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return palette.Default()
}

// overlays names every column drawn by a role other than a plain series.
func (o Options) overlays() []string {
	names := append(append(append([]string{}, o.Targets...), o.Forecasts...), o.Trajectories...)
	return lo.Compact(append(names, o.AreaLower, o.AreaUpper))
}

func (o Options) areaName() string {
	if o.AreaName == "" {
		return DefaultAreaName
	}
	return o.AreaName
}

func (o Options) palette() string {
	if o.Palette == "" {
		return palette.Categorical
	}
	return o.Palette
}

// Axis carries the tick formatting of the value axis.
type Axis struct {
	TickFormat string    `json:"tickformat"`
	TickPrefix string    `json:"tickprefix,omitempty"`
	TickSuffix string    `json:"ticksuffix,omitempty"`
	Range      []float64 `json:"range,omitempty"`
}

// Trace is one plotted series.
type Trace struct {
	Kind        string     `json:"type"`
	Name        string     `json:"name"`
	Mode        string     `json:"mode,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
	Labels      []string   `json:"labels"`
	Values      []*float64 `json:"values"`
	Text        []string   `json:"text,omitempty"`
	Colour      string     `json:"colour,omitempty"`
	Colours     []string   `json:"colours,omitempty"`
	Dash        string     `json:"dash,omitempty"`
	Fill        string     `json:"fill,omitempty"`
	FillColour  string     `json:"fillcolour,omitempty"`
	Increasing  string     `json:"increasing,omitempty"`
	Decreasing  string     `json:"decreasing,omitempty"`
	Connector   string     `json:"connector,omitempty"`
}

// Annotation is a free floating label pinned to a data point.
type Annotation struct {
	X       string  `json:"x"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
	Colour  string  `json:"colour,omitempty"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor,omitempty"`
}

// Figure is a complete, serialisable chart description.
type Figure struct {
	Type        Type            `json:"chart_type"`
	Traces      []Trace         `json:"traces"`
	Annotations []Annotation    `json:"annotations,omitempty"`
	ValueAxis   Axis            `json:"value_axis"`
	BarMode     string          `json:"barmode,omitempty"`
	ShowLegend  bool            `json:"showlegend"`
	Format      format.Decision `json:"format"`
}

// JSON encodes the figure.
func (f *Figure) JSON() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Schema returns the JSON schema of Figure.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Figure{}), "", "  ")
}

// Build dispatches to the builder for t.
func Build(t Type, d series.Data, opts Options) (*Figure, error) {
	if d.Len() == 0 || len(d.Columns()) == 0 {
		return nil, series.ErrEmpty
	}
	if err := checkOverlays(d, opts); err != nil {
		return nil, err
	}

	if t != Line && t != Column {
		d = d.Without(opts.overlays()...)
	}

	var (
		fig *Figure
		err error
	)
	switch t {
	case Line:
		fig, err = buildLine(d, opts)
	case Bar:
		fig, err = buildBar(d, opts)
	case Column:
		fig, err = buildColumn(d, opts)
	case Pie:
		fig, err = buildPie(d, opts)
	case SingleStackedBar:
		fig, err = buildSingleStacked(d, opts)
	case Waterfall:
		fig, err = buildWaterfall(d, opts)
	default:
		return nil, fmt.Errorf("unknown chart type %q", t)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("chart: built %s with %d traces, %s", t, len(fig.Traces), fig.Format)
	return fig, nil
}

// checkOverlays requires every overlay column to exist and leave at least one series.
func checkOverlays(d series.Data, opts Options) error {
	if (opts.AreaLower == "") != (opts.AreaUpper == "") {
		return errors.New("a range band needs both a lower and an upper column")
	}
	for _, name := range opts.overlays() {
		if _, ok := d.Column(name); !ok {
			return fmt.Errorf("%w: %q", series.ErrUnknownColumn, name)
		}
	}
	if len(d.Without(opts.overlays()...).Columns()) == 0 {
		return fmt.Errorf("%w: every column is an overlay", series.ErrEmpty)
	}
	return nil
}

// newFigure derives one decision across every column of d.
func newFigure(t Type, d series.Data, opts Options) (*Figure, format.Decision) {
	decision := format.DeriveColumns(opts.Unit, lo.Map(d.Columns(), func(c series.Column, _ int) []mo.Option[float64] {
		return c.Values
	})...)
	axis := Axis{
		TickFormat: decision.TickFormat(),
		TickPrefix: decision.Prefix,
		TickSuffix: decision.Suffix(),
	}
	if len(opts.Range) == 2 {
		axis.Range = []float64{decision.Scale(opts.Range[0]), decision.Scale(opts.Range[1])}
	}
	return &Figure{Type: t, ValueAxis: axis, Format: decision}, decision
}

// colours resolves exactly n colours; more series than the palette holds is an error.
func colours(opts Options, n int) ([]string, error) {
	resolved, err := opts.registry().Resolve(opts.palette(), palette.Hex, n)
	if err != nil {
		return nil, err
	}
	return lo.Map(resolved, func(c palette.Colour, _ int) string { return c.String() }), nil
}

// cycled resolves n colours, repeating a discrete palette when n exceeds it.
func cycled(opts Options, n int) ([]string, error) {
	p, ok := opts.registry().Palette(opts.palette())
	if !ok {
		return colours(opts, n)
	}
	size := n
	if limit, bounded := p.Max(); bounded && limit < n {
		size = limit
	}
	base, err := colours(opts, size)
	if err != nil {
		return nil, err
	}
	return lo.Times(n, func(i int) string { return base[i%len(base)] }), nil
}

// ragOr returns the RAG fill for name when RAG colouring is on, fallback otherwise.
func ragOr(opts Options, name, fallback string) string {
	if !opts.RAG {
		return fallback
	}
	if s, ok := opts.registry().RAG(name); ok {
		return s.Fill.Hex()
	}
	return fallback
}

// named returns the hex of an AF colour, empty when the registry lacks it.
func named(opts Options, name string) string {
	c, ok := opts.registry().Named(name)
	if !ok {
		return ""
	}
	return c.Hex()
}

func wrap(label string, width int) string {
	if width <= 0 {
		return label
	}
	return strings.ReplaceAll(wordwrap.String(label, width), "\n", "<br>")
}

func wrapAll(labels []string, width int) []string {
	return lo.Map(labels, func(l string, _ int) string { return wrap(l, width) })
}

func pointers(values []mo.Option[float64]) []*float64 {
	return lo.Map(values, func(v mo.Option[float64], _ int) *float64 {
		x, ok := v.Get()
		if !ok {
			return nil
		}
		return &x
	})
}

func barMode(opts Options) string {
	if opts.Stacked {
		return "stack"
	}
	return "group"
}
