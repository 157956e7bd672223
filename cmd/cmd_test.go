package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/afcharts/afcharts/config"
	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/palette"
	"github.com/afcharts/afcharts/series"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

// resetFlags restores every flag of c and its children to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func run(args ...string) (string, error) {
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPaletteCommand(t *testing.T) {
	Convey("afcharts palette", t, func() {
		Convey("Two categorical colours come from duo", func() {
			out, err := run("palette", "categorical", "-n", "2", "--json")
			So(err, ShouldBeNil)

			var colours []string
			So(json.Unmarshal([]byte(out), &colours), ShouldBeNil)
			So(colours, ShouldResemble, []string{"#12436D", "#F46A25"})
		})

		Convey("Unknown palettes suggest the closest name", func() {
			_, err := run("palette", "mian", "-n", "1")
			So(errors.Is(err, palette.ErrInvalidPalette), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "main")
		})
	})
}

func TestFormatCommand(t *testing.T) {
	Convey("afcharts format", t, func() {
		out, err := run("format", "--json", "-u", "£", "100000", "2000000", "NA")
		So(err, ShouldBeNil)

		var decoded formatOutput
		So(json.Unmarshal([]byte(out), &decoded), ShouldBeNil)
		So(decoded.Labels, ShouldResemble, []string{"£0.1m", "£2.0m", ""})
		So(decoded.TickFormat, ShouldEqual, ",.1f")

		Convey("A single argument may group thousands with commas", func() {
			out, err := run("format", "--json", "1,250", "300")
			So(err, ShouldBeNil)

			var decoded formatOutput
			So(json.Unmarshal([]byte(out), &decoded), ShouldBeNil)
			So(decoded.Labels, ShouldResemble, []string{"1,250", "300"})
		})
	})
}

func TestChartCommand(t *testing.T) {
	Convey("afcharts chart", t, func() {
		Convey("Builds figure JSON from flags", func() {
			out, err := run("chart", "-t", "column", "-l", "a,b", "-s", "v=1,2", "-u", "", "-o", "")
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal([]byte(out), &decoded), ShouldBeNil)
			So(decoded["chart_type"], ShouldEqual, "column")
		})

		Convey("Draws a range band and a target from flags", func() {
			out, err := run("chart", "-l", "2022,2023", "-s", "Rate=0.2,0.3", "-s", "Low=0.1,0.2", "-s", "High=0.3,0.4",
				"-s", "Goal=0.25,0.35", "--area-lower", "Low", "--area-upper", "High", "--target", "Goal", "-u", "%")
			So(err, ShouldBeNil)

			var fig struct {
				Traces []struct {
					Name string `json:"name"`
					Fill string `json:"fill"`
					Dash string `json:"dash"`
				} `json:"traces"`
			}
			So(json.Unmarshal([]byte(out), &fig), ShouldBeNil)
			So(fig.Traces, ShouldHaveLength, 3)
			So(fig.Traces[0].Name, ShouldEqual, "Range")
			So(fig.Traces[0].Fill, ShouldEqual, "toself")
			So(fig.Traces[1].Name, ShouldEqual, "Rate")
			So(fig.Traces[2].Name, ShouldEqual, "Goal")
			So(fig.Traces[2].Dash, ShouldEqual, "dash")
		})

		Convey("A band needs both bounds", func() {
			_, err := run("chart", "-l", "a", "-s", "v=1", "-s", "Low=0", "--area-lower", "Low")
			So(err, ShouldNotBeNil)
		})

		Convey("Builds a waterfall", func() {
			out, err := run("chart", "-t", "waterfall", "-l", "Start,Rise,Fall", "-s", "Change=100,20,-5")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `"type": "waterfall"`)
		})

		Convey("Writes the figure to a file when asked", func() {
			_, err := run("chart", "-t", "pie", "-l", "a,b", "-s", "share=1,3", "-o", "/out/figure.json")
			So(err, ShouldBeNil)

			raw, err := filesystem.API().ReadFile("/out/figure.json")
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"chart_type": "pie"`)
		})
	})

	Convey("parseTable", t, func() {
		Convey("Numbers labels when none are given", func() {
			table, err := parseTable(nil, []string{"x=1,2,3"})
			So(err, ShouldBeNil)
			So(lo.Map(table.Rows, func(r series.Row, _ int) string { return r.Label }), ShouldResemble, []string{"1", "2", "3"})
		})

		Convey("Rejects series of different lengths", func() {
			_, err := parseTable([]string{"a", "b"}, []string{"x=1,2", "y=1"})
			So(errors.Is(err, series.ErrLengthMismatch), ShouldBeTrue)
		})

		Convey("Rejects malformed series", func() {
			_, err := parseTable(nil, []string{"1,2"})
			So(err, ShouldNotBeNil)

			_, err = parseTable(nil, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestConfigCommand(t *testing.T) {
	Convey("afcharts config", t, func() {
		Convey("get prints the current value", func() {
			out, err := run("config", "get", "palette.format")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "hex\n")
		})

		Convey("get rejects unknown keys with a suggestion", func() {
			_, err := run("config", "get", "palette.formt")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "palette.format")
		})
	})
}

func TestEnv(t *testing.T) {
	Convey("envVars lists every exposed key and the config path override", t, func() {
		vars := envVars()
		So(vars, ShouldContain, "AFCHARTS_PALETTE_DEFAULT")
		So(vars, ShouldContain, "AFCHARTS_CONFIG_PATH")
	})
}
