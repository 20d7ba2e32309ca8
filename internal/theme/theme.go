package theme

import (
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme shared by the TUI and the report renderer
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	CodeBg    lipgloss.AdaptiveColor

	// Progress gradient endpoints
	GradientStart string
	GradientEnd   string
}

// pair is a light/dark color pair
type pair [2]string

func (p pair) adaptive() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p[0], Dark: p[1]}
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, info, border, muted, highlight, codeBg pair, gradient pair) Theme {
	return Theme{
		Name:          name,
		Primary:       primary.adaptive(),
		Secondary:     secondary.adaptive(),
		Accent:        accent.adaptive(),
		Success:       success.adaptive(),
		Warning:       warning.adaptive(),
		Error:         errorColor.adaptive(),
		Info:          info.adaptive(),
		Border:        border.adaptive(),
		Muted:         muted.adaptive(),
		Highlight:     highlight.adaptive(),
		CodeBg:        codeBg.adaptive(),
		GradientStart: gradient[0],
		GradientEnd:   gradient[1],
	}
}

// Available themes
var (
	Default = buildTheme("default",
		pair{"#1E40AF", "#3B82F6"}, pair{"#6B7280", "#9CA3AF"}, pair{"#4F46E5", "#818CF8"},
		pair{"#059669", "#10B981"}, pair{"#D97706", "#F59E0B"}, pair{"#DC2626", "#EF4444"},
		pair{"#0891B2", "#06B6D4"}, pair{"#D1D5DB", "#374151"}, pair{"#6B7280", "#9CA3AF"},
		pair{"#EFF6FF", "#1E293B"}, pair{"#F1F5F9", "#1F2937"},
		pair{"#3B82F6", "#4F46E5"})

	HighContrast = buildTheme("high-contrast",
		pair{"#000000", "#FFFFFF"}, pair{"#666666", "#BBBBBB"}, pair{"#000080", "#8080FF"},
		pair{"#006600", "#00FF00"}, pair{"#CC6600", "#FFAA00"}, pair{"#CC0000", "#FF4444"},
		pair{"#0066CC", "#4499FF"}, pair{"#000000", "#FFFFFF"}, pair{"#666666", "#BBBBBB"},
		pair{"#FFFF00", "#444444"}, pair{"#EEEEEE", "#222222"},
		pair{"#0000FF", "#FFFFFF"})

	Minimal = buildTheme("minimal",
		pair{"#2D3748", "#E2E8F0"}, pair{"#718096", "#A0AEC0"}, pair{"#4A5568", "#CBD5E0"},
		pair{"#2F855A", "#68D391"}, pair{"#C05621", "#F6AD55"}, pair{"#C53030", "#FC8181"},
		pair{"#2B6CB0", "#63B3ED"}, pair{"#E2E8F0", "#2D3748"}, pair{"#A0AEC0", "#718096"},
		pair{"#F7FAFC", "#2D3748"}, pair{"#EDF2F7", "#1A202C"},
		pair{"#718096", "#E2E8F0"})
)

var themes = map[string]Theme{
	Default.Name:      Default,
	HighContrast.Name: HighContrast,
	Minimal.Name:      Minimal,
}

// ByName returns the named theme
func ByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// Names returns list of available theme names
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorDisabled checks if colors should be disabled
func ColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}
