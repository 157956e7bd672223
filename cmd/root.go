// Package cmd implements the command-line interface for afcharts.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/afcharts/afcharts/constant"
	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/icon"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/log"
	"github.com/afcharts/afcharts/palette"
	"github.com/afcharts/afcharts/style"
	"github.com/afcharts/afcharts/util"
	"github.com/afcharts/afcharts/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("palettes", "", "YAML file merged over the built-in palettes")
	lo.Must0(viper.BindPFlag(key.PaletteConfigPath, rootCmd.PersistentFlags().Lookup("palettes")))
}

// rootCmd defines the entry point for the afcharts application.
var rootCmd = &cobra.Command{
	Use:   constant.Afcharts,
	Short: "Analysis Function colour palettes and chart formatting",
	Long: constant.AsciiArtLogo + "\n\n" +
		style.New().Italic(true).Foreground(style.AccentColor).Render("    - Analysis Function colour palettes and chart formatting"),
	SilenceUsage: true,
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		handleErr(err)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// registry loads the palettes the commands resolve against: the built-in set,
// with the configured or conventional override file merged over it.
func registry() (*palette.Registry, error) {
	path := viper.GetString(key.PaletteConfigPath)
	if path == "" && filesystem.IsFile(where.Palettes()) {
		path = where.Palettes()
	}

	if path == "" {
		return palette.Default(), nil
	}

	log.Infof("loading palette overrides from %s", path)
	return palette.Load(path)
}

// explain adds a did-you-mean hint to unknown palette errors.
func explain(err error, name string, r *palette.Registry) error {
	if !errors.Is(err, palette.ErrInvalidPalette) {
		return err
	}
	return fmt.Errorf("%w %s, did you mean %s?", palette.ErrInvalidPalette,
		style.Fg(style.ErrorColor)(name),
		style.Fg(style.AccentColor)(util.Closest(name, r.Names())),
	)
}

func completionPaletteNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := palette.Default().Names()
	if toComplete == "" {
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	return fuzzy.FindFold(toComplete, names), cobra.ShellCompDirectiveNoFileComp
}
