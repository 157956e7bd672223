// Package series defines the validated input shapes the chart builders accept.
//
// Data is built through one constructor per accepted shape (a label to value
// mapping, parallel label and value lists, or a table with named columns),
// each validating at the boundary.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	ErrEmpty          = errors.New("no data")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrUnknownColumn  = errors.New("unknown column")
)

// Kind records which constructor built the data.
type Kind int

const (
	Mapping Kind = iota + 1
	Lists
	Tabular
)

func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case Lists:
		return "lists"
	case Tabular:
		return "table"
	default:
		return "unknown"
	}
}

// Column is a named series of optional values aligned with the data labels.
type Column struct {
	Name   string
	Values []mo.Option[float64]
}

// Data is an immutable set of labelled value columns.
type Data struct {
	kind    Kind
	labels  []string
	columns []Column
}

// FromMap builds single column data from a label to value mapping. The
// labels follow order when given, sorted keys otherwise.
func FromMap(name string, m map[string]float64, order ...string) (Data, error) {
	if len(m) == 0 {
		return Data{}, ErrEmpty
	}

	labels := order
	if len(labels) == 0 {
		labels = lo.Keys(m)
		sort.Strings(labels)
	}

	values := make([]mo.Option[float64], len(labels))
	for i, label := range labels {
		v, ok := m[label]
		if !ok {
			return Data{}, fmt.Errorf("%w: label %q is not in the mapping", ErrUnknownColumn, label)
		}
		values[i] = option(v)
	}

	return Data{
		kind:    Mapping,
		labels:  append([]string(nil), labels...),
		columns: []Column{{Name: name, Values: values}},
	}, nil
}

// FromLists builds single column data from parallel lists. NaN marks a missing value.
func FromLists(name string, labels []string, values []float64) (Data, error) {
	if len(labels) == 0 {
		return Data{}, ErrEmpty
	}
	if len(labels) != len(values) {
		return Data{}, fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}

	return Data{
		kind:    Lists,
		labels:  append([]string(nil), labels...),
		columns: []Column{{Name: name, Values: lo.Map(values, func(v float64, _ int) mo.Option[float64] { return option(v) })}},
	}, nil
}

// Row is one table row: a label followed by one value per table column.
type Row struct {
	Label  string
	Values []mo.Option[float64]
}

// Table is a labelled grid of optional numbers, the label column first.
type Table struct {
	Columns []string
	Rows    []Row
}

// FromTable selects columns of a table, all of them when none are named.
func FromTable(t Table, columns ...string) (Data, error) {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return Data{}, ErrEmpty
	}

	for i, row := range t.Rows {
		if len(row.Values) != len(t.Columns) {
			return Data{}, fmt.Errorf("%w: row %d has %d values, table has %d columns", ErrLengthMismatch, i, len(row.Values), len(t.Columns))
		}
	}

	if len(columns) == 0 {
		columns = t.Columns
	}

	d := Data{
		kind:   Tabular,
		labels: lo.Map(t.Rows, func(r Row, _ int) string { return r.Label }),
	}
	for _, name := range columns {
		idx := lo.IndexOf(t.Columns, name)
		if idx < 0 {
			return Data{}, fmt.Errorf("%w: %q (columns: %s)", ErrUnknownColumn, name, strings.Join(t.Columns, ", "))
		}
		d.columns = append(d.columns, Column{
			Name:   name,
			Values: lo.Map(t.Rows, func(r Row, _ int) mo.Option[float64] { return r.Values[idx] }),
		})
	}

	return d, nil
}

func option(v float64) mo.Option[float64] {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return mo.None[float64]()
	}
	return mo.Some(v)
}

// ParseValue parses a single number token; "", "NA", "NaN" and "-" are missing.
// Commas are read as thousands separators, so "1,250" is 1250. Tokens that
// come out of ParseValues never contain one.
func ParseValue(token string) (mo.Option[float64], error) {
	token = strings.TrimSpace(token)
	switch strings.ToLower(token) {
	case "", "na", "nan", "-", "null":
		return mo.None[float64](), nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil {
		return mo.None[float64](), fmt.Errorf("parse value %q: %w", token, err)
	}
	return option(v), nil
}

// ParseValues parses a comma separated list of tokens. The comma is the list
// separator here, so grouped numbers such as "1,250" split into two values.
func ParseValues(list string) ([]mo.Option[float64], error) {
	tokens := strings.Split(list, ",")
	values := make([]mo.Option[float64], len(tokens))
	for i, tok := range tokens {
		v, err := ParseValue(tok)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Kind reports the shape the data was built from.
func (d Data) Kind() Kind {
	return d.kind
}

// Len is the number of labels.
func (d Data) Len() int {
	return len(d.labels)
}

// Labels returns a copy of the category labels.
func (d Data) Labels() []string {
	return append([]string(nil), d.labels...)
}

// Columns returns the value columns in order.
func (d Data) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// Column looks a column up by name.
func (d Data) Column(name string) (Column, bool) {
	return lo.Find(d.columns, func(c Column) bool { return c.Name == name })
}

// Values returns every value of every column, used to derive one format per chart.
func (d Data) Values() []mo.Option[float64] {
	return lo.FlatMap(d.columns, func(c Column, _ int) []mo.Option[float64] { return c.Values })
}

// Without drops the named columns.
func (d Data) Without(names ...string) Data {
	d.columns = lo.Filter(d.columns, func(c Column, _ int) bool { return !lo.Contains(names, c.Name) })
	return d
}

// Only keeps the named columns, in the order named.
func (d Data) Only(names ...string) Data {
	d.columns = lo.FilterMap(names, func(name string, _ int) (Column, bool) { return d.Column(name) })
	return d
}

// SortByFirst reorders rows by the first column. Missing values sort last.
func (d Data) SortByFirst(ascending bool) Data {
	if len(d.columns) == 0 {
		return d
	}

	idx := lo.Range(len(d.labels))
	first := d.columns[0].Values
	sort.SliceStable(idx, func(i, j int) bool {
		a, aok := first[idx[i]].Get()
		b, bok := first[idx[j]].Get()
		switch {
		case !aok:
			return false
		case !bok:
			return true
		case ascending:
			return a < b
		default:
			return a > b
		}
	})

	sorted := Data{kind: d.kind, labels: make([]string, len(idx))}
	for i, k := range idx {
		sorted.labels[i] = d.labels[k]
	}
	for _, c := range d.columns {
		values := make([]mo.Option[float64], len(idx))
		for i, k := range idx {
			values[i] = c.Values[k]
		}
		sorted.columns = append(sorted.columns, Column{Name: c.Name, Values: values})
	}
	return sorted
}
