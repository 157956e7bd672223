// Package icon renders the CLI's feedback symbols in the configured variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/afcharts/afcharts/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every icon variant name.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Palette
	Gradient
	Chart
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "✖", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Palette:  {emoji: "🎨", nerd: "", plain: "■", kaomoji: "(◕‿◕)", squares: "🟦"},
	Gradient: {emoji: "🌈", nerd: "", plain: "▤", kaomoji: "(≧◡≦)", squares: "🟪"},
	Chart:    {emoji: "📊", nerd: "", plain: "▮", kaomoji: "(•̀ᴗ•́)", squares: "🟨"},
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders the icon in the configured variant, empty for unknown variants.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
