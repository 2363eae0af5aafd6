package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay shows keyboard shortcuts help
type HelpOverlay struct {
	visible bool
	theme   Theme
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(theme Theme) HelpOverlay {
	return HelpOverlay{
		theme: theme,
	}
}

// Toggle toggles visibility
func (m *HelpOverlay) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlay) IsVisible() bool {
	return m.visible
}

// Update handles input
func (m HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// View renders the help overlay
func (m HelpOverlay) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Case Viewer Help"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(14)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	section := func(title string, rows []struct{ key, desc string }) {
		b.WriteString(sectionStyle.Render(title) + "\n")
		for _, r := range rows {
			b.WriteString("  " + keyStyle.Render(r.key) + descStyle.Render(r.desc) + "\n")
		}
		b.WriteString("\n")
	}

	section("GLOBAL", []struct{ key, desc string }{
		{"Tab/Shift+Tab", "Switch panel focus"},
		{"/", "Search everything"},
		{"n", "Note on selected entity"},
		{"y", "Copy selected ID"},
		{"E", "Export network SVG"},
		{"M", "Export map PNG"},
		{"C", "Clear all filters"},
		{"R", "Reload data"},
		{"J/K", "Scroll detail pane"},
		{"q", "Quit"},
	})

	section("MAP", []struct{ key, desc string }{
		{"h/j/k/l", "Pan viewport"},
		{"+/-", "Zoom in / out"},
		{",/.", "Cycle markers"},
		{"f", "Fit to filtered places"},
		{"Enter", "Open location"},
	})

	section("NETWORK", []struct{ key, desc string }{
		{"j/k", "Cycle people"},
		{"Enter", "Open person and pan map"},
	})

	section("TIMELINE", []struct{ key, desc string }{
		{"←/→", "Move play head a day"},
		{"H/L", "Move play head a week"},
		{"0-9", "Jump to position"},
		{"[/]", "Shift range start"},
		{"{/}", "Shift range end"},
		{"s/e", "Type range start / end"},
	})

	section("FILTERS", []struct{ key, desc string }{
		{"j/k", "Move between toggles"},
		{"Space", "Toggle filter"},
	})

	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
