package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/afcharts/afcharts/color"
	"github.com/afcharts/afcharts/config"
	"github.com/afcharts/afcharts/constant"
	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/icon"
	"github.com/afcharts/afcharts/style"
	"github.com/afcharts/afcharts/util"
	"github.com/afcharts/afcharts/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(key string) error {
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(util.Closest(key, lo.Keys(config.Default))),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// writeConfig persists viper's state, creating the file on first write.
func writeConfig() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func configFilePath() string {
	return filepath.Join(where.Config(), constant.Afcharts+".toml")
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd is the parent of the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Configuration keys to describe")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configInfoCmd describes configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe configuration fields with their current and default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = fields[:0]
			for _, k := range keys {
				field, ok := config.Default[k]
				if !ok {
					return errUnknownKey(k)
				}
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields))
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())
			if i < len(fields)-1 {
				cmd.Print("\n\n")
			}
		}
		cmd.Println()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

// configGetCmd prints the current value of a key.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a configuration key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := config.Default[args[0]]; !ok {
			return errUnknownKey(args[0])
		}
		cmd.Println(viper.Get(args[0]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

// configSetCmd updates a key and persists it.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update the value of a configuration key",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, raw := args[0], args[1]
		field, ok := config.Default[k]
		if !ok {
			return errUnknownKey(k)
		}

		var v any
		switch field.Value.(type) {
		case int:
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer value: %s", raw)
			}
			v = parsed
		case bool:
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %s", raw)
			}
			v = parsed
		default:
			v = raw
		}

		viper.Set(k, v)
		if err := writeConfig(); err != nil {
			return err
		}

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprint(v)),
		)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key to its default")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores keys to their defaults.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore configuration keys to their default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		k := lo.Must(cmd.Flags().GetString("key"))

		if lo.Must(cmd.Flags().GetBool("all")) {
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}
		} else {
			field, ok := config.Default[k]
			if !ok {
				return errUnknownKey(k)
			}
			viper.Set(k, field.Value)
		}

		if err := writeConfig(); err != nil {
			return err
		}

		cmd.Printf("%s reset %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), lo.Ternary(k == "", "all config values", k))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}

// configWriteCmd writes the current configuration to the config file.
var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if lo.Must(cmd.Flags().GetBool("force")) && filesystem.IsFile(path) {
			if err := filesystem.API().Remove(path); err != nil {
				return err
			}
		}

		if err := viper.SafeWriteConfig(); err != nil {
			return err
		}
		cmd.Printf("%s wrote config to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the configuration file.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the configuration file",
	Aliases: []string{"remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := filesystem.API().Remove(configFilePath()); err != nil {
			return err
		}
		cmd.Printf("%s deleted %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), configFilePath())
		return nil
	},
}
