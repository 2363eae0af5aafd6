package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"casevis/pkg/notes"
	"casevis/pkg/store"
)

// searchItem is one entity findable through the overlay.
type searchItem struct {
	sel   Selection
	title string
	tag   string
}

// SearchOverlay is a fuzzy finder across every named entity in the store.
type SearchOverlay struct {
	theme Theme
	input textinput.Model
	width int

	all      []searchItem
	filtered []searchItem
	cursor   int

	// Result
	chosen    *Selection
	cancelled bool
}

// NewSearchOverlay indexes the store for fuzzy lookup.
func NewSearchOverlay(theme Theme, s *store.Store) SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "search cases, places, people, events..."
	ti.CharLimit = 80
	ti.Focus()

	var items []searchItem
	for _, c := range s.Cases {
		items = append(items, searchItem{sel: Selection{Kind: notes.KindCase, ID: c.ID}, title: c.Name, tag: "case"})
	}
	for _, loc := range s.Locations {
		items = append(items, searchItem{sel: Selection{Kind: notes.KindLocation, ID: loc.ID}, title: loc.Name, tag: "place"})
	}
	for _, ind := range s.Individuals {
		title := ind.Name
		if ind.Alias != "" {
			title += " " + ind.Alias
		}
		items = append(items, searchItem{sel: Selection{Kind: notes.KindIndividual, ID: ind.ID}, title: title, tag: "person"})
	}
	for _, ev := range s.Events {
		items = append(items, searchItem{sel: Selection{Kind: notes.KindEvent, ID: ev.ID}, title: ev.Name, tag: "event"})
	}

	o := SearchOverlay{theme: theme, input: ti, all: items}
	o.filtered = items
	return o
}

// SetSize sets the overlay width in cells.
func (o *SearchOverlay) SetSize(width int) { o.width = width }

// Update handles a key press. The overlay reports completion through
// Chosen and IsCancelled.
func (o SearchOverlay) Update(msg tea.Msg) (SearchOverlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			o.cancelled = true
			return o, nil
		case "enter":
			if o.cursor < len(o.filtered) {
				sel := o.filtered[o.cursor].sel
				o.chosen = &sel
			}
			return o, nil
		case "up", "ctrl+k":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil
		case "down", "ctrl+j":
			if o.cursor < len(o.filtered)-1 {
				o.cursor++
			}
			return o, nil
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	o.refilter()
	return o, cmd
}

func (o *SearchOverlay) refilter() {
	query := strings.TrimSpace(o.input.Value())
	if query == "" {
		o.filtered = o.all
		o.cursor = 0
		return
	}

	searchStrings := make([]string, len(o.all))
	for i, item := range o.all {
		searchStrings[i] = item.title
	}
	matches := fuzzy.Find(query, searchStrings)
	o.filtered = make([]searchItem, 0, len(matches))
	for _, match := range matches {
		o.filtered = append(o.filtered, o.all[match.Index])
	}
	o.cursor = 0
}

// Chosen returns the picked entity, if the user confirmed one.
func (o SearchOverlay) Chosen() (Selection, bool) {
	if o.chosen == nil {
		return Selection{}, false
	}
	return *o.chosen, true
}

// IsCancelled reports whether the overlay was dismissed.
func (o SearchOverlay) IsCancelled() bool { return o.cancelled }

// View renders the input box with the top matches beneath it.
func (o SearchOverlay) View() string {
	width := o.width
	if width <= 0 || width > 60 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(o.input.View())
	b.WriteByte('\n')

	const maxRows = 10
	rowStyle := o.theme.Renderer.NewStyle().Foreground(o.theme.Text)
	hotStyle := o.theme.Renderer.NewStyle().Foreground(o.theme.Text).Reverse(true)
	tagStyle := o.theme.Renderer.NewStyle().Foreground(o.theme.Muted)

	for i, item := range o.filtered {
		if i >= maxRows {
			break
		}
		line := runewidth.Truncate(item.title, width-10, "…")
		if i == o.cursor {
			line = hotStyle.Render(line)
		} else {
			line = rowStyle.Render(line)
		}
		b.WriteByte('\n')
		b.WriteString(line + " " + tagStyle.Render(item.tag))
	}
	if len(o.filtered) == 0 {
		b.WriteByte('\n')
		b.WriteString(tagStyle.Render("no matches"))
	}

	box := o.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(o.theme.Primary).
		Padding(0, 1).
		Width(width)
	return box.Render(b.String())
}
