package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/stepper"
)

// Theme defines the bar palette and chrome colors for the TUI
type Theme struct {
	Name     string
	Normal   lipgloss.Color
	Pivot    lipgloss.Color
	Compared lipgloss.Color
	Sorted   lipgloss.Color
	Title    lipgloss.Color
	Muted    lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:     "classic",
		Normal:   lipgloss.Color("#1e6fff"), // Blue
		Pivot:    lipgloss.Color("#ff2a2a"), // Red
		Compared: lipgloss.Color("#ffa500"), // Orange
		Sorted:   lipgloss.Color("#22cc44"), // Green
		Title:    lipgloss.Color("#00ffff"),
		Muted:    lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Normal:   lipgloss.Color("#00aa00"),
		Pivot:    lipgloss.Color("#ffff00"),
		Compared: lipgloss.Color("#88ff88"),
		Sorted:   lipgloss.Color("#00ff00"),
		Title:    lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Normal:   lipgloss.Color("#0077be"),
		Pivot:    lipgloss.Color("#ff4444"),
		Compared: lipgloss.Color("#ffd700"),
		Sorted:   lipgloss.Color("#00ff88"),
		Title:    lipgloss.Color("#00a8cc"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Normal:   lipgloss.Color("#ff9ff3"),
		Pivot:    lipgloss.Color("#ff4757"),
		Compared: lipgloss.Color("#feca57"),
		Sorted:   lipgloss.Color("#5fd068"),
		Title:    lipgloss.Color("#ff6b6b"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Normal:   lipgloss.Color("#888888"),
		Pivot:    lipgloss.Color("#ffffff"),
		Compared: lipgloss.Color("#0088ff"),
		Sorted:   lipgloss.Color("#cccccc"),
		Title:    lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#555555"),
	}

	// All available themes, default first
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after name, wrapping around
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// StateColor maps an element state to its bar color.
func (t Theme) StateColor(s stepper.ElementState) lipgloss.Color {
	switch s {
	case stepper.Pivot:
		return t.Pivot
	case stepper.Compared:
		return t.Compared
	case stepper.Sorted:
		return t.Sorted
	default:
		return t.Normal
	}
}
