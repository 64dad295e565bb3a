package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the form.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Danger  string
	Border  string
}

var themes = map[string]Theme{
	"dark": {
		Name:    "dark",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#8be9fd",
		Success: "#50fa7b",
		Danger:  "#ff5555",
		Border:  "#44475a",
	},
	"light": {
		Name:    "light",
		Text:    "#282a36",
		Muted:   "#a0a0a0",
		Accent:  "#0087af",
		Success: "#1a7f37",
		Danger:  "#cf222e",
		Border:  "#d0d7de",
	},
}

// GetTheme returns the named theme, falling back to dark.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	FocusLabel lipgloss.Style
	Muted      lipgloss.Style
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	Frame      lipgloss.Style
}

// Styles returns the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Width(14),

		FocusLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Width(14),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		StatusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),
	}
}
