// Package format decides how the numbers of one chart are displayed.
//
// A Decision is derived once from every value plotted on a chart and then
// applied to each tick, bar label and annotation, so that one axis never
// mixes scale or precision.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Unit markers recognised inside a free text unit hint.
const (
	PercentMarker  = "%"
	CurrencyMarker = "£"
)

// Magnitude thresholds for the millions scale.
const (
	hundredThousand = 100_000
	million         = 1_000_000
)

// Precision is the number of decimal places rendered.
type Precision int

const (
	// OneDecimal renders a single decimal place.
	OneDecimal Precision = iota
	// Integer renders no decimal places.
	Integer
)

func (p Precision) String() string {
	if p == Integer {
		return "integer"
	}
	return "one-decimal"
}

// Decision is the scale, precision and affixes shared by every value of a chart.
type Decision struct {
	Multiplier  float64   `json:"multiplier"`
	Divisor     float64   `json:"divisor"`
	Precision   Precision `json:"precision"`
	Prefix      string    `json:"prefix"`
	ScaleSuffix string    `json:"scale_suffix"`
	UnitSuffix  string    `json:"unit_suffix"`
}

// Default is the decision used when there is nothing to decide from.
func Default() Decision {
	return Decision{Multiplier: 1, Divisor: 1, Precision: OneDecimal}
}

// Derive scans every defined value and decides the format for the whole set.
//
// Rules run in order: a "%" hint multiplies by 100 and adds a "%" suffix,
// otherwise a "£" hint adds a "£" prefix; if every multiplied value is at
// least 100,000 and one reaches 1,000,000 the set is shown in millions with
// an "m" suffix; if every scaled value is whole no decimals are shown.
func Derive(values []mo.Option[float64], unit string) Decision {
	defined := lo.FilterMap(values, func(v mo.Option[float64], _ int) (float64, bool) {
		x, ok := v.Get()
		return x, ok && finite(x)
	})

	d := Default()
	if len(defined) == 0 {
		return d
	}

	switch {
	case strings.Contains(unit, PercentMarker):
		d.Multiplier = 100
		d.UnitSuffix = PercentMarker
	case strings.Contains(unit, CurrencyMarker):
		d.Prefix = CurrencyMarker
	}

	multiplied := lo.Map(defined, func(x float64, _ int) float64 {
		return x * d.Multiplier
	})

	allHundredThousands := lo.EveryBy(multiplied, func(x float64) bool { return x >= hundredThousand })
	anyMillion := lo.SomeBy(multiplied, func(x float64) bool { return x >= million })
	if allHundredThousands && anyMillion {
		d.Divisor = million
		d.ScaleSuffix = "m"
	}

	if lo.EveryBy(multiplied, func(x float64) bool { return isWhole(x / d.Divisor) }) {
		d.Precision = Integer
	}

	return d
}

// DeriveColumns derives one decision across several series of the same chart.
func DeriveColumns(unit string, columns ...[]mo.Option[float64]) Decision {
	return Derive(lo.Flatten(columns), unit)
}

// DeriveFloats is Derive for plain floats, where NaN marks a missing value.
func DeriveFloats(values []float64, unit string) Decision {
	return Derive(Options(values), unit)
}

// Options converts plain floats to optional values, NaN and infinities becoming absent.
func Options(values []float64) []mo.Option[float64] {
	return lo.Map(values, func(x float64, _ int) mo.Option[float64] {
		if !finite(x) {
			return mo.None[float64]()
		}
		return mo.Some(x)
	})
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func isWhole(x float64) bool {
	return x == math.Trunc(x)
}

// Suffix is the full suffix, scale marker first.
func (d Decision) Suffix() string {
	return d.ScaleSuffix + d.UnitSuffix
}

// Scale maps a raw value onto the displayed axis.
func (d Decision) Scale(x float64) float64 {
	m, div := d.Multiplier, d.Divisor
	if m == 0 {
		m = 1
	}
	if div == 0 {
		div = 1
	}
	return x * m / div
}

// ScaleAll maps every defined value, keeping missing entries absent.
func (d Decision) ScaleAll(values []mo.Option[float64]) []mo.Option[float64] {
	return lo.Map(values, func(v mo.Option[float64], _ int) mo.Option[float64] {
		x, ok := v.Get()
		if !ok || !finite(x) {
			return mo.None[float64]()
		}
		return mo.Some(d.Scale(x))
	})
}

// Number renders an already scaled value with the decided precision and
// thousands grouping, without affixes.
func (d Decision) Number(scaled float64) string {
	if d.Precision == Integer {
		return humanize.FormatFloat("#,###.", scaled)
	}
	return humanize.FormatFloat("#,###.#", scaled)
}

// Apply renders a raw value as "{prefix}{number}{suffix}". Missing values
// render as an empty label.
func (d Decision) Apply(v mo.Option[float64]) string {
	x, ok := v.Get()
	if !ok || !finite(x) {
		return ""
	}
	return d.Prefix + d.Number(d.Scale(x)) + d.Suffix()
}

// ApplyFloat is Apply for a plain float, NaN rendering as empty.
func (d Decision) ApplyFloat(x float64) string {
	return d.Apply(mo.Some(x))
}

// ApplyAll renders every value of a series.
func (d Decision) ApplyAll(values []mo.Option[float64]) []string {
	return lo.Map(values, func(v mo.Option[float64], _ int) string {
		return d.Apply(v)
	})
}

// TickFormat returns the d3 style tick format plotting front ends expect.
func (d Decision) TickFormat() string {
	if d.Precision == Integer {
		return ",.0f"
	}
	return ",.1f"
}

func (d Decision) String() string {
	return fmt.Sprintf("divisor=%g multiplier=%g precision=%s prefix=%q suffix=%q",
		d.Divisor, d.Multiplier, d.Precision, d.Prefix, d.Suffix())
}
