package theme

// Palette is the set of colors a surface renders with. Values are hex strings
// so both lipgloss and CSS can use them.
type Palette struct {
	Background    string
	Surface       string
	Border        string
	PrimaryText   string
	SecondaryText string
	MutedText     string
	Placeholder   string
	Accent        string
	AccentBright  string
	Error         string
	Success       string
	Warning       string
}

// LightPalette mirrors the page's default look: grey text on white with the
// purple accent.
var LightPalette = Palette{
	Background:    "#FFFFFF",
	Surface:       "#F5F3FF",
	Border:        "#D1D5DB", // gray-300
	PrimaryText:   "#374151", // gray-700
	SecondaryText: "#6B7280",
	MutedText:     "#9CA3AF",
	Placeholder:   "#9CA3AF",
	Accent:        "#5044E5",
	AccentBright:  "#7C3AED",
	Error:         "#DC2626",
	Success:       "#16A34A",
	Warning:       "#D97706",
}

// DarkPalette is the dark: variant, white text on black
var DarkPalette = Palette{
	Background:    "#000000",
	Surface:       "#1B1530",
	Border:        "#4B5563", // gray-600
	PrimaryText:   "#FFFFFF",
	SecondaryText: "#B1B8C7",
	MutedText:     "#6D7383",
	Placeholder:   "#B1B8C7",
	Accent:        "#7C3AED",
	AccentBright:  "#A78BFA",
	Error:         "#EF4444",
	Success:       "#22C55E",
	Warning:       "#F59E0B",
}

// PaletteFor returns the palette for t. Only Dark has themed rules; every
// other value, including unknown stored strings, gets the base light palette.
func PaletteFor(t Theme) Palette {
	if t == Dark {
		return DarkPalette
	}
	return LightPalette
}
