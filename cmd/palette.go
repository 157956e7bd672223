package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/afcharts/afcharts/color"
	"github.com/afcharts/afcharts/icon"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/palette"
	"github.com/afcharts/afcharts/style"
	"github.com/afcharts/afcharts/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultGradientCount is how many colours a gradient yields when no count is given.
const defaultGradientCount = 5

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().StringP("format", "f", "", "Colour format: hex or rgb")
	paletteCmd.Flags().IntP("count", "n", 0, "Number of colours; all of a discrete palette or 5 from a gradient when unset")
	paletteCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	lo.Must0(viper.BindPFlag(key.PaletteFormat, paletteCmd.Flags().Lookup("format")))
	lo.Must0(paletteCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(palette.Formats(), func(f palette.Format, _ int) string { return string(f) }), cobra.ShellCompDirectiveNoFileComp
	}))
}

// paletteCmd resolves a palette into an ordered list of colours.
var paletteCmd = &cobra.Command{
	Use:               "palette [name]",
	Short:             "Resolve a palette into an ordered list of colours",
	Example:           "  afcharts palette categorical -n 2\n  afcharts palette sequential -n 7 -f rgb",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionPaletteNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := registry()
		if err != nil {
			return err
		}

		name := viper.GetString(key.PaletteDefault)
		if len(args) > 0 {
			name = args[0]
		}

		count := lo.Must(cmd.Flags().GetInt("count"))
		if !cmd.Flags().Changed("count") {
			count = defaultCount(r, name)
		}

		colours, err := r.Resolve(name, palette.Format(viper.GetString(key.PaletteFormat)), count)
		if err != nil {
			return explain(err, name, r)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(colours)
		}

		for i, c := range colours {
			cmd.Printf("%s %s %s\n", swatch(c), style.Faint(fmt.Sprintf("%2d", i+1)), c)
		}
		return nil
	},
}

func defaultCount(r *palette.Registry, name string) int {
	p, ok := r.Palette(name)
	if !ok {
		return 1
	}
	if limit, bounded := p.Max(); bounded {
		return limit
	}
	return defaultGradientCount
}

func swatch(c palette.Colour) string {
	if !viper.GetBool(key.CliSwatches) {
		return ""
	}
	return style.Swatch(c.Hex(), 4)
}

func init() {
	rootCmd.AddCommand(palettesCmd)
}

// palettesCmd lists the registered palettes.
var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the registered palettes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := registry()
		if err != nil {
			return err
		}

		names := r.Names()
		cmd.Println(style.Title("Analysis Function palettes"))
		width := util.Max(lo.Map(names, func(n string, _ int) int { return len(n) })...)
		previewWidth := util.Clamp(util.TerminalWidth(80)/4, 6, 30)

		for _, name := range names {
			p, _ := r.Palette(name)

			var (
				symbol = icon.Get(icon.Palette)
				size   string
			)
			if limit, bounded := p.Max(); bounded {
				size = util.Quantify(limit, "colour", "colours")
			} else {
				symbol = icon.Get(icon.Gradient)
				size = fmt.Sprintf("%s, %s", p.Kind(), util.Quantify(len(p.Stops()), "stop", "stops"))
			}

			preview, err := r.Resolve(name, palette.Hex, previewCount(p, previewWidth))
			if err != nil {
				return err
			}

			cmd.Printf("%s %s %s %s\n",
				symbol,
				style.Bold(fmt.Sprintf("%-*s", width, name)),
				lo.Reduce(preview, func(acc string, c palette.Colour, _ int) string {
					return acc + style.Swatch(c.Hex(), previewWidth/len(preview))
				}, ""),
				style.Faint(size),
			)
		}
		return nil
	},
}

func previewCount(p *palette.Palette, width int) int {
	if limit, bounded := p.Max(); bounded {
		return limit
	}
	return width
}

func init() {
	rootCmd.AddCommand(coloursCmd)
	coloursCmd.Flags().Bool("rag", false, "Show the red/amber/green statuses with their text colours")
}

// coloursCmd lists the named Analysis Function colour values.
var coloursCmd = &cobra.Command{
	Use:   "colours",
	Short: "List the named Analysis Function colour values",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := registry()
		if err != nil {
			return err
		}

		if lo.Must(cmd.Flags().GetBool("rag")) {
			for _, status := range []string{"Green", "Amber", "Red"} {
				s, ok := r.RAG(status)
				if !ok {
					continue
				}
				label := style.Tag(color.New(s.Font.Hex()), color.New(s.Fill.Hex()))(status)
				cmd.Printf("%s %s on %s\n", label, s.Font.Hex(), s.Fill.Hex())
			}
			return nil
		}

		names := r.ColourNames()
		width := util.Max(lo.Map(names, func(n string, _ int) int { return len(n) })...)
		for _, name := range names {
			c, _ := r.Named(name)
			cmd.Printf("%s %-*s %s\n", swatch(c), width, name, c.Hex())
		}
		return nil
	},
}
