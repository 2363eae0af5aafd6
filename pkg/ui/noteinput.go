package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoteInput is the modal for annotating the selected entity.
type NoteInput struct {
	textarea textarea.Model
	title    string
	target   Selection
	width    int
	theme    Theme

	// Result
	submitted bool
	cancelled bool
	text      string
}

// NewNoteInput creates a note modal for the given entity.
func NewNoteInput(theme Theme, title string, target Selection) NoteInput {
	ta := textarea.New()
	ta.Placeholder = "What did you observe?"
	ta.Focus()
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(5)

	return NoteInput{
		textarea: ta,
		title:    title,
		target:   target,
		theme:    theme,
	}
}

// Init implements tea.Model
func (m NoteInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles a key press. Completion is reported through IsSubmitted
// and IsCancelled.
func (m NoteInput) Update(msg tea.Msg) (NoteInput, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "ctrl+enter", "ctrl+s", "ctrl+j":
			// ctrl+j is alternate for terminals that don't support ctrl+enter
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				m.cancelled = true
				return m, nil
			}
			m.submitted = true
			m.text = text
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the modal box.
func (m NoteInput) View() string {
	var b strings.Builder

	width := 60
	if m.width > 0 && m.width < 70 {
		width = m.width - 10
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Width(width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render("Note on " + m.title))
	b.WriteString("\n\n")

	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[Ctrl+Enter/Ctrl+J] Save  [Esc] Cancel"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(b.String())
}

// SetSize sets the modal dimensions
func (m *NoteInput) SetSize(width int) {
	m.width = width

	taWidth := width - 20
	if taWidth < 30 {
		taWidth = 30
	}
	if taWidth > 60 {
		taWidth = 60
	}
	m.textarea.SetWidth(taWidth)
}

// IsSubmitted returns true if the user saved the note
func (m NoteInput) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user cancelled
func (m NoteInput) IsCancelled() bool {
	return m.cancelled
}

// Text returns the entered note text
func (m NoteInput) Text() string {
	return m.text
}

// Target returns the entity being annotated
func (m NoteInput) Target() Selection {
	return m.target
}
