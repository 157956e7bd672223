package cmd

import (
	"fmt"
	"strings"

	"github.com/afcharts/afcharts/chart"
	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/icon"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/series"
	"github.com/afcharts/afcharts/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringP("type", "t", string(chart.Line), "Chart type: line, bar, column, pie, stacked or waterfall")
	chartCmd.Flags().StringSliceP("labels", "l", nil, "Category labels, in row order")
	chartCmd.Flags().StringArrayP("series", "s", nil, "A named series as name=v1,v2,...; repeat for more series")
	chartCmd.Flags().StringP("unit", "u", "", "Unit hint; \"%\" shows percentages, \"£\" shows currency")
	chartCmd.Flags().StringP("palette", "p", "", "Palette for trace colours")
	chartCmd.Flags().Bool("stacked", false, "Stack bars instead of grouping them")
	chartCmd.Flags().Bool("timeline", false, "Keep row order instead of sorting by value")
	chartCmd.Flags().Bool("rag", false, "Colour Green/Amber/Red series by status")
	chartCmd.Flags().Float64Slice("range", nil, "Fix the value axis as min,max in raw units")
	chartCmd.Flags().StringSlice("target", nil, "Series drawn as dashed target lines (line and column charts)")
	chartCmd.Flags().StringSlice("forecast", nil, "Series drawn as dashed forecasts (line charts)")
	chartCmd.Flags().StringSlice("trajectory", nil, "Series drawn as dashed trajectories (line charts)")
	chartCmd.Flags().String("area-lower", "", "Series bounding a shaded range band from below (line charts)")
	chartCmd.Flags().String("area-upper", "", "Series bounding a shaded range band from above (line charts)")
	chartCmd.Flags().String("area-name", chart.DefaultAreaName, "Legend label of the range band")
	chartCmd.MarkFlagsRequiredTogether("area-lower", "area-upper")
	chartCmd.Flags().Bool("schema", false, "Print the JSON schema of the figure and exit")
	chartCmd.Flags().StringP("output", "o", "", "Write the figure to this file instead of stdout")
	lo.Must0(viper.BindPFlag(key.PaletteDefault, chartCmd.Flags().Lookup("palette")))

	lo.Must0(chartCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(chart.Types(), func(t chart.Type, _ int) string { return string(t) }), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(chartCmd.RegisterFlagCompletionFunc("palette", completionPaletteNames))
}

// chartCmd builds a figure description and prints it as JSON.
var chartCmd = &cobra.Command{
	Use:     "chart",
	Short:   "Build an Analysis Function styled figure description as JSON",
	Example: "  afcharts chart -t column -l 2021,2022,2023 -s Spend=1200000,1500000,2100000 -u £ --timeline\n" +
		"  afcharts chart -l 2022,2023,2024 -s Rate=0.1,0.2,0.25 -s Low=0.05,0.15,0.2 -s High=0.15,0.25,0.3 --area-lower Low --area-upper High -u %",
	RunE: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			schema, err := chart.Schema()
			if err != nil {
				return err
			}
			cmd.Println(string(schema))
			return nil
		}

		t, err := chart.ParseType(lo.Must(cmd.Flags().GetString("type")))
		if err != nil {
			return err
		}

		table, err := parseTable(
			lo.Must(cmd.Flags().GetStringSlice("labels")),
			lo.Must(cmd.Flags().GetStringArray("series")),
		)
		if err != nil {
			return err
		}

		data, err := series.FromTable(table)
		if err != nil {
			return err
		}

		r, err := registry()
		if err != nil {
			return err
		}

		unit := viper.GetString(key.ChartUnit)
		if cmd.Flags().Changed("unit") {
			unit = lo.Must(cmd.Flags().GetString("unit"))
		}

		name := viper.GetString(key.PaletteDefault)
		fig, err := chart.Build(t, data, chart.Options{
			Unit:         unit,
			Palette:      name,
			Stacked:      lo.Must(cmd.Flags().GetBool("stacked")),
			Timeline:     lo.Must(cmd.Flags().GetBool("timeline")),
			RAG:          lo.Must(cmd.Flags().GetBool("rag")),
			LabelWidth:   viper.GetInt(key.ChartLabelWrap),
			Range:        lo.Must(cmd.Flags().GetFloat64Slice("range")),
			Targets:      lo.Must(cmd.Flags().GetStringSlice("target")),
			Forecasts:    lo.Must(cmd.Flags().GetStringSlice("forecast")),
			Trajectories: lo.Must(cmd.Flags().GetStringSlice("trajectory")),
			AreaLower:    lo.Must(cmd.Flags().GetString("area-lower")),
			AreaUpper:    lo.Must(cmd.Flags().GetString("area-upper")),
			AreaName:     lo.Must(cmd.Flags().GetString("area-name")),
			Registry:     r,
		})
		if err != nil {
			return explain(err, name, r)
		}

		out, err := fig.JSON()
		if err != nil {
			return err
		}

		path := lo.Must(cmd.Flags().GetString("output"))
		if path == "" {
			cmd.Println(string(out))
			return nil
		}

		if err := filesystem.API().WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write figure: %w", err)
		}
		cmd.Printf("%s %s chart written to %s\n", style.Fg(style.AccentColor)(icon.Get(icon.Chart)), t, path)
		return nil
	},
}

// parseTable turns --labels and repeated --series flags into a table.
func parseTable(labels []string, entries []string) (series.Table, error) {
	if len(entries) == 0 {
		return series.Table{}, fmt.Errorf("at least one --series is required")
	}

	columns := make([]string, len(entries))
	values := make([][]mo.Option[float64], len(entries))
	for i, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return series.Table{}, fmt.Errorf("series %q must look like name=v1,v2,...", entry)
		}
		parsed, err := series.ParseValues(list)
		if err != nil {
			return series.Table{}, fmt.Errorf("series %s: %w", name, err)
		}
		columns[i] = strings.TrimSpace(name)
		values[i] = parsed
	}

	if len(labels) == 0 {
		labels = lo.Times(len(values[0]), func(i int) string { return fmt.Sprint(i + 1) })
	}

	for c, column := range columns {
		if len(values[c]) != len(labels) {
			return series.Table{}, fmt.Errorf("%w: series %s has %d values for %d labels", series.ErrLengthMismatch, column, len(values[c]), len(labels))
		}
	}

	rows := make([]series.Row, len(labels))
	for r, label := range labels {
		rows[r] = series.Row{
			Label:  label,
			Values: lo.Map(columns, func(_ string, c int) mo.Option[float64] { return values[c][r] }),
		}
	}
	return series.Table{Columns: columns, Rows: rows}, nil
}
