package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/afcharts/afcharts/color"
	"github.com/afcharts/afcharts/constant"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a configuration key with its factory default and help text.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Afcharts + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Env:         f.Env(),
	})
}

// Default holds every configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PaletteDefault, "categorical", "Palette used when none is given.\nType \"afcharts palettes\" to list them")
	register(key.PaletteFormat, "hex", "Colour format to print.\nAvailable options are: hex, rgb")
	register(key.PaletteConfigPath, "", "YAML file merged over the built-in palettes.\nDefaults to palettes.yaml in the config directory when it exists")
	register(key.ChartLabelWrap, 0, "Wrap category labels after this many characters, 0 disables wrapping")
	register(key.ChartUnit, "", "Default unit hint for numbers, e.g. % or £")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliSwatches, true, "Print a colour swatch next to each resolved colour")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"accent":   style.Fg(style.AccentColor),
	"key":      style.Fg(color.Purple),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			if value == "" {
				return style.Faint(`""`)
			}
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ accent "Key:" }}     {{ key .Key }}
{{ accent "Env:" }}     {{ .Env }}
{{ accent "Value:" }}   {{ hl (value .Key) }}
{{ accent "Default:" }} {{ hl (.Value) }}
{{ accent "Type:" }}    {{ typename .Value }}`))
