package cmd

import (
	"encoding/json"

	"github.com/afcharts/afcharts/format"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/series"
	"github.com/afcharts/afcharts/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringP("unit", "u", "", "Unit hint; \"%\" shows percentages, \"£\" shows currency")
	formatCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	lo.Must0(viper.BindPFlag(key.ChartUnit, formatCmd.Flags().Lookup("unit")))
}

type formatOutput struct {
	Decision   format.Decision `json:"decision"`
	TickFormat string          `json:"tickformat"`
	Labels     []string        `json:"labels"`
}

// formatCmd derives one display format for a set of values and applies it to each.
var formatCmd = &cobra.Command{
	Use:     "format [values...]",
	Short:   "Decide how a set of chart values is displayed and render each one",
	Example: "  afcharts format -u £ 100000 2000000\n  afcharts format -u % 0.1 0.25 NA",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]mo.Option[float64], len(args))
		for i, arg := range args {
			v, err := series.ParseValue(arg)
			if err != nil {
				return err
			}
			values[i] = v
		}

		decision := format.Derive(values, viper.GetString(key.ChartUnit))
		labels := decision.ApplyAll(values)

		if lo.Must(cmd.Flags().GetBool("json")) {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(formatOutput{
				Decision:   decision,
				TickFormat: decision.TickFormat(),
				Labels:     labels,
			})
		}

		cmd.Println(style.Faint(decision.String()))
		for i, label := range labels {
			if label == "" {
				label = style.Faint("(missing)")
			}
			cmd.Printf("%s -> %s\n", args[i], label)
		}
		return nil
	},
}
