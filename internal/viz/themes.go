package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors a particle field in every host. Particles are drawn in
// Primary with a Secondary glow; Accent marks plots. Text and Muted carry
// the panels, and Success, Warning and Error color the run status.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name: "minimal", Primary: "#f2f2f2", Secondary: "#9a9a9a", Accent: "#3d8bfd",
		Background: "#000000", Text: "#e6e6e6", Muted: "#7a7a7a",
		Success: "#4cd97b", Warning: "#f0b429", Error: "#f25f5c",
	}
	ThemeOcean = Theme{
		Name: "ocean", Primary: "#5ec8f2", Secondary: "#1d6fa3", Accent: "#f7d154",
		Background: "#04121f", Text: "#d8ecf8", Muted: "#4f7c99",
		Success: "#3ddc97", Warning: "#ffcb47", Error: "#ff5d73",
	}
	ThemeEmber = Theme{
		Name: "ember", Primary: "#ff8a3d", Secondary: "#a3320b", Accent: "#ffd166",
		Background: "#1a0a05", Text: "#fde8d7", Muted: "#8c5a44",
		Success: "#9bd770", Warning: "#ffd166", Error: "#ef233c",
	}
	ThemeNeon = Theme{
		Name: "neon", Primary: "#ff3df5", Secondary: "#3df5ff", Accent: "#f5ff3d",
		Background: "#0b0014", Text: "#fbeaff", Muted: "#7a4f8c",
		Success: "#3dff8b", Warning: "#ffa53d", Error: "#ff3d5a",
	}
	ThemePhosphor = Theme{
		Name: "phosphor", Primary: "#33ff66", Secondary: "#119933", Accent: "#b3ffc6",
		Background: "#001a08", Text: "#33ff66", Muted: "#1f6b33",
		Success: "#b3ffc6", Warning: "#e6ff33", Error: "#ff4d4d",
	}

	CurrentTheme = ThemeMinimal

	// Themes is the cycle order of the t key.
	Themes = []Theme{ThemeMinimal, ThemeOcean, ThemeEmber, ThemeNeon, ThemePhosphor}
)

// GetTheme looks a theme up by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// RGBA converts a theme color to an opaque color.RGBA.
func RGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
