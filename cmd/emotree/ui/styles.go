// Package ui renders journal entries, month trees and reflections for the terminal.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"emotree/internal/emotion"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#2b2a33")
	LightPrimary    = lipgloss.Color("#3d6b45") // pine
	LightAccent     = lipgloss.Color("#c9a227") // gold leaf
	LightMuted      = lipgloss.Color("#9a9aa3")
	LightBorder     = lipgloss.Color("#d9d6cf")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#eeeae2")
	DarkPrimary    = lipgloss.Color("#8fc79a")
	DarkAccent     = lipgloss.Color("#e8c65a")
	DarkMuted      = lipgloss.Color("#6b6b75")
	DarkBorder     = lipgloss.Color("#3a3a44")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
)

// emotionColors tints ornaments and headings per category.
var emotionColors = map[emotion.Category]lipgloss.Color{
	emotion.Joy:        lipgloss.Color("#f4b400"),
	emotion.Calm:       lipgloss.Color("#5fa777"),
	emotion.Melancholy: lipgloss.Color("#5b7bd5"),
	emotion.Anxiety:    lipgloss.Color("#9e9e9e"),
	emotion.Hope:       lipgloss.Color("#4fc3f7"),
	emotion.Wonder:     lipgloss.Color("#ba68c8"),
	emotion.Gratitude:  lipgloss.Color("#ff8a65"),
	emotion.Anger:      lipgloss.Color("#e53935"),
	emotion.Queasy:     lipgloss.Color("#9ccc65"),
}

// EmotionColor returns the color of a category, calm's for unknown values.
func EmotionColor(c emotion.Category) lipgloss.Color {
	if col, ok := emotionColors[c]; ok {
		return col
	}
	return emotionColors[emotion.Default]
}

// Theme holds the current color scheme
type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme guesses from COLORFGBG ("fg;bg") and falls back to light.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// ThemeFor maps the stored theme preference to a Theme. "default" and
// unknown names are detected from the terminal.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark", "night":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Card    lipgloss.Style
	Quote   lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Quote: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// EmotionBadge renders a category name on its color.
func (s Styles) EmotionBadge(c emotion.Category) string {
	return s.Badge.Background(EmotionColor(c)).Render(string(c))
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
