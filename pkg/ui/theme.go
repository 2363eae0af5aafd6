package ui

import "github.com/charmbracelet/lipgloss"

// Theme carries the adaptive color palette and the renderer used to build
// styles. All views derive their styles from a Theme so output degrades
// sensibly on light terminals.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Info      lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard dark-leaning palette.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#6272A4"},
		Text:      lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#F8F8F2"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#475569", Dark: "#BFBFBF"},
		Muted:     lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#6272A4"},
		Border:    lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#44475A"},
		Success:   lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#50FA7B"},
		Warning:   lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FFB86C"},
		Danger:    lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF5555"},
		Info:      lipgloss.AdaptiveColor{Light: "#0284C7", Dark: "#8BE9FD"},
	}
}

// PanelStyle returns the border style for a panel, highlighted when focused.
func (t Theme) PanelStyle(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.Primary
	}
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
