// Package key defines the configuration identifiers shared by config, flags and environment bindings.
package key

// Palette Resolution - these keys choose the palette and output format used when none is given.
const (
	PaletteDefault    = "palette.default"
	PaletteFormat     = "palette.format"
	PaletteConfigPath = "palette.config_path"
)

// Chart Building - these keys tune the figure builders.
const (
	ChartLabelWrap = "chart.label_wrap"
	ChartUnit      = "chart.unit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal output.
const (
	CliColored  = "cli.colored"
	CliSwatches = "cli.swatches"
)
