package parameter

// Palette offered after a ball is clicked, selected with keys 1..N
var DefaultPalette = []string{"SkyBlue", "DodgerBlue", "Turquoise", "SteelBlue"}

// DefaultBallColor is the color of the initial balls
const DefaultBallColor = "SkyBlue"

// FallbackColor is used when a ball color name is not recognized by the terminal
const FallbackColor = "#c8c8ff"

// Terminal cell geometry
const (
	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0

	// BallGlyph fills cells covered by a disk
	BallGlyph = '█'

	// SwatchGlyph previews each palette entry
	SwatchGlyph = '▌'

	// HUDRows is reserved at the bottom of the screen for the status line
	HUDRows = 1
)

// Terminal colors
const (
	TableColor      = "#0b3d2e"
	MarginColor     = "#111417"
	HUDForeground   = "#d0d0d0"
	HUDBackground   = "#262b30"
	PanelForeground = "#f0f0f0"
	PanelBackground = "#3a3f46"
)

// Ball shading, the rim blends toward black by up to RimShade
const (
	ShadeLevels = 4
	RimShade    = 0.45
)
