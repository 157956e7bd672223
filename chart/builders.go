package chart

import (
	"math"
	"slices"

	"github.com/afcharts/afcharts/format"
	"github.com/afcharts/afcharts/series"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// buildLine draws one line per series column and pins the last defined value
// of each line as an annotation. Overlay columns are drawn around the series:
// the range band beneath them, then dashed targets, forecasts and trajectories.
func buildLine(d series.Data, opts Options) (*Figure, error) {
	fig, decision := newFigure(Line, d, opts)
	columns := d.Without(opts.overlays()...).Columns()

	palette, err := colours(opts, len(columns))
	if err != nil {
		return nil, err
	}

	labels := wrapAll(d.Labels(), opts.LabelWidth)
	if opts.AreaLower != "" {
		fig.Traces = append(fig.Traces, band(d, opts, decision, labels))
	}

	for i, c := range columns {
		fig.Traces = append(fig.Traces, Trace{
			Kind:   "scatter",
			Mode:   "lines",
			Name:   c.Name,
			Labels: labels,
			Values: pointers(decision.ScaleAll(c.Values)),
			Colour: palette[i],
		})
		if a, ok := lastValue(c, decision, labels); ok {
			a.Colour = palette[i]
			fig.Annotations = append(fig.Annotations, a)
		}
	}

	var forecastColours []string
	if len(opts.Forecasts) > 0 {
		if forecastColours, err = cycled(opts, len(opts.Forecasts)); err != nil {
			return nil, err
		}
	}
	dashed := func(name, colour string) {
		c, _ := d.Column(name)
		fig.Traces = append(fig.Traces, Trace{
			Kind:   "scatter",
			Mode:   lo.Ternary(defined(c.Values) <= 1, "markers", "lines"),
			Name:   name,
			Labels: labels,
			Values: pointers(decision.ScaleAll(c.Values)),
			Colour: colour,
			Dash:   "dash",
		})
		if a, ok := lastValue(c, decision, labels); ok {
			a.XAnchor, a.YAnchor = "right", "bottom"
			fig.Annotations = append(fig.Annotations, a)
		}
	}
	for _, name := range opts.Targets {
		dashed(name, named(opts, targetColour))
	}
	for i, name := range opts.Forecasts {
		dashed(name, forecastColours[i])
	}

	for _, name := range opts.Trajectories {
		c, _ := d.Column(name)
		fig.Traces = append(fig.Traces, Trace{
			Kind:   "scatter",
			Mode:   "lines",
			Name:   name,
			Labels: labels,
			Values: pointers(decision.ScaleAll(c.Values)),
			Colour: named(opts, secondaryColour),
			Dash:   "dash",
		})
	}

	fig.ShowLegend = len(fig.Traces) > 1
	return fig, nil
}

// band closes the upper bound back along the reversed lower bound into one
// filled polygon.
func band(d series.Data, opts Options, decision format.Decision, labels []string) Trace {
	lower, _ := d.Column(opts.AreaLower)
	upper, _ := d.Column(opts.AreaUpper)

	var fill string
	if c, ok := opts.registry().Named(bandColour); ok {
		fill = c.RGBA(bandAlpha)
	}

	return Trace{
		Kind:       "scatter",
		Mode:       "lines",
		Name:       opts.areaName(),
		Labels:     append(slices.Clone(labels), reversed(labels)...),
		Values:     pointers(append(decision.ScaleAll(upper.Values), reversed(decision.ScaleAll(lower.Values))...)),
		Colour:     fill,
		Fill:       "toself",
		FillColour: fill,
	}
}

// buildBar draws horizontal bars, smallest first unless the rows are a timeline.
func buildBar(d series.Data, opts Options) (*Figure, error) {
	if !opts.Timeline {
		d = d.SortByFirst(true)
	}
	fig, decision := newFigure(Bar, d, opts)
	columns := d.Columns()

	palette, err := colours(opts, len(columns))
	if err != nil {
		return nil, err
	}

	labels := wrapAll(d.Labels(), opts.LabelWidth)
	for i, c := range columns {
		fig.Traces = append(fig.Traces, Trace{
			Kind:        "bar",
			Orientation: "h",
			Name:        c.Name,
			Labels:      labels,
			Values:      pointers(decision.ScaleAll(c.Values)),
			Text:        decision.ApplyAll(c.Values),
			Colour:      ragOr(opts, c.Name, palette[i]),
		})
	}

	fig.BarMode = barMode(opts)
	fig.ShowLegend = len(columns) > 1
	return fig, nil
}

// buildColumn draws vertical columns, largest first unless the rows are a
// timeline, with headroom above the tallest column. Target columns become a
// dashed line with the last target value annotated.
func buildColumn(d series.Data, opts Options) (*Figure, error) {
	plotted := d.Without(opts.overlays()...)
	names := lo.Map(plotted.Columns(), func(c series.Column, _ int) string { return c.Name })
	d = d.Only(append(names, opts.Targets...)...)
	if !opts.Timeline {
		d = d.SortByFirst(false)
	}
	plotted = d.Only(names...)

	fig, decision := newFigure(Column, plotted, opts)
	columns := plotted.Columns()

	palette, err := colours(opts, len(columns))
	if err != nil {
		return nil, err
	}

	labels := wrapAll(d.Labels(), opts.LabelWidth)
	for i, c := range columns {
		fig.Traces = append(fig.Traces, Trace{
			Kind:   "bar",
			Name:   c.Name,
			Labels: labels,
			Values: pointers(decision.ScaleAll(c.Values)),
			Text:   decision.ApplyAll(c.Values),
			Colour: ragOr(opts, c.Name, palette[i]),
		})
	}

	for _, name := range opts.Targets {
		c, _ := d.Column(name)
		fig.Traces = append(fig.Traces, Trace{
			Kind:   "scatter",
			Mode:   "lines",
			Name:   name,
			Labels: labels,
			Values: pointers(decision.ScaleAll(c.Values)),
			Colour: named(opts, targetColour),
			Dash:   "dash",
		})
		if a, ok := lastValue(c, decision, labels); ok {
			a.YAnchor = "middle"
			fig.Annotations = append(fig.Annotations, a)
		}
	}

	if fig.ValueAxis.Range == nil {
		fig.ValueAxis.Range = columnRange(decision, plotted.Values())
	}
	fig.BarMode = barMode(opts)
	fig.ShowLegend = len(fig.Traces) > 1
	return fig, nil
}

// buildPie draws the first column as a ring of slices.
func buildPie(d series.Data, opts Options) (*Figure, error) {
	c := d.Columns()[0]
	d = d.Only(c.Name)
	fig, decision := newFigure(Pie, d, opts)

	palette, err := cycled(opts, d.Len())
	if err != nil {
		return nil, err
	}

	labels := d.Labels()
	fig.Traces = []Trace{{
		Kind:   "pie",
		Name:   c.Name,
		Labels: wrapAll(labels, opts.LabelWidth),
		Values: pointers(decision.ScaleAll(c.Values)),
		Text:   decision.ApplyAll(c.Values),
		Colours: lo.Map(labels, func(label string, i int) string {
			return ragOr(opts, label, palette[i])
		}),
	}}
	fig.ShowLegend = true
	return fig, nil
}

// buildSingleStacked turns every row of the first column into one segment
// of a single horizontal bar.
func buildSingleStacked(d series.Data, opts Options) (*Figure, error) {
	c := d.Columns()[0]
	d = d.Only(c.Name)
	fig, decision := newFigure(SingleStackedBar, d, opts)

	palette, err := cycled(opts, d.Len())
	if err != nil {
		return nil, err
	}

	for i, label := range d.Labels() {
		v := c.Values[i]
		fig.Traces = append(fig.Traces, Trace{
			Kind:        "bar",
			Orientation: "h",
			Name:        label,
			Labels:      []string{c.Name},
			Values:      pointers(decision.ScaleAll([]mo.Option[float64]{v})),
			Text:        []string{decision.Apply(v)},
			Colour:      ragOr(opts, label, palette[i]),
		})
	}

	fig.BarMode = "stack"
	fig.ShowLegend = true
	return fig, nil
}

// buildWaterfall draws the first column as running increments, rises in the
// primary colour and falls in the secondary. The opening value is unlabelled.
func buildWaterfall(d series.Data, opts Options) (*Figure, error) {
	c := d.Columns()[0]
	d = d.Only(c.Name)
	fig, decision := newFigure(Waterfall, d, opts)

	text := decision.ApplyAll(c.Values)
	text[0] = ""

	fig.Traces = []Trace{{
		Kind:       "waterfall",
		Name:       c.Name,
		Labels:     wrapAll(d.Labels(), opts.LabelWidth),
		Values:     pointers(decision.ScaleAll(c.Values)),
		Text:       text,
		Increasing: named(opts, primaryColour),
		Decreasing: named(opts, secondaryColour),
		Connector:  named(opts, featureColour),
	}}
	return fig, nil
}

// lastValue annotates the last defined value of c, anchored left of the point.
func lastValue(c series.Column, decision format.Decision, labels []string) (Annotation, bool) {
	last, ok := lastDefined(c.Values)
	if !ok {
		return Annotation{}, false
	}
	raw := c.Values[last].MustGet()
	return Annotation{
		X:       labels[last],
		Y:       decision.Scale(raw),
		Text:    decision.ApplyFloat(raw),
		XAnchor: "left",
	}, true
}

func reversed[T any](s []T) []T {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

func defined(values []mo.Option[float64]) int {
	return lo.CountBy(values, func(v mo.Option[float64]) bool { return v.IsPresent() })
}

func lastDefined(values []mo.Option[float64]) (int, bool) {
	_, idx, ok := lo.FindLastIndexOf(values, func(v mo.Option[float64]) bool { return v.IsPresent() })
	return idx, ok
}

// columnRange pads the tallest column by 10% and starts at zero unless
// values go negative, in which case the floor is padded the same way.
func columnRange(decision format.Decision, values []mo.Option[float64]) []float64 {
	scaled := lo.FilterMap(decision.ScaleAll(values), func(v mo.Option[float64], _ int) (float64, bool) {
		return v.Get()
	})
	if len(scaled) == 0 {
		return nil
	}

	high := lo.Max(scaled)
	low := lo.Min(scaled)
	high += 0.1 * math.Abs(high)
	if low >= 0 {
		low = 0
	} else {
		low += 0.1 * low
	}
	return []float64{low, high}
}
