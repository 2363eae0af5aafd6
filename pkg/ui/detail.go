package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"casevis/pkg/model"
	"casevis/pkg/notes"
	"casevis/pkg/store"
)

// Selection names the entity shown in the detail pane.
type Selection struct {
	Kind notes.Kind
	ID   string
}

// DetailPane renders the selected entity as markdown with its notes
// underneath, scrollable through a viewport.
type DetailPane struct {
	theme    Theme
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int

	selection Selection
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme Theme) DetailPane {
	return DetailPane{theme: theme, viewport: viewport.New(40, 10)}
}

// SetSize resizes the pane and rebuilds the markdown renderer for the new
// wrap width.
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.viewport.Width = width
	d.viewport.Height = height
	d.renderer = nil
}

// Selection returns the entity currently shown.
func (d DetailPane) Selection() Selection { return d.selection }

// Scroll moves the viewport by the given number of lines.
func (d *DetailPane) Scroll(lines int) {
	if lines < 0 {
		d.viewport.LineUp(-lines)
	} else {
		d.viewport.LineDown(lines)
	}
}

// Show renders the given entity and its notes into the pane.
func (d *DetailPane) Show(s *store.Store, sel Selection, entityNotes []notes.Note) {
	d.selection = sel
	md := d.markdownFor(s, sel)
	if len(entityNotes) > 0 {
		var b strings.Builder
		b.WriteString(md)
		b.WriteString("\n## Notes\n\n")
		for _, n := range entityNotes {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", n.Author, n.CreatedAt.Format("2006-01-02"), n.Text)
		}
		md = b.String()
	}
	d.viewport.SetContent(d.renderMarkdown(md))
	d.viewport.GotoTop()
}

func (d *DetailPane) renderMarkdown(md string) string {
	if d.renderer == nil {
		width := d.width - 2
		if width < 20 {
			width = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		d.renderer = r
	}
	out, err := d.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, " \n\r\t")
}

func (d DetailPane) markdownFor(s *store.Store, sel Selection) string {
	switch sel.Kind {
	case notes.KindCase:
		if c, ok := s.CaseByID(sel.ID); ok {
			return caseMarkdown(c)
		}
	case notes.KindLocation:
		if loc, ok := s.LocationByID(sel.ID); ok {
			return locationMarkdown(loc)
		}
	case notes.KindEvent:
		if ev, ok := s.EventByID(sel.ID); ok {
			return eventMarkdown(s, ev)
		}
	case notes.KindIndividual:
		if ind, ok := s.IndividualByID(sel.ID); ok {
			return individualMarkdown(s, ind)
		}
	}
	return "_nothing selected_"
}

func caseMarkdown(c *model.Case) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	fmt.Fprintf(&b, "**Status:** %s  \n**Opened:** %s\n\n", c.Status, c.StartDate.Format("2006-01-02"))
	if c.EndDate != nil {
		fmt.Fprintf(&b, "**Closed:** %s\n\n", c.EndDate.Format("2006-01-02"))
	}
	if c.Description != "" {
		b.WriteString(c.Description + "\n\n")
	}
	fmt.Fprintf(&b, "%d locations, %d events, %d individuals\n",
		len(c.LocationIDs), len(c.EventIDs), len(c.IndividualIDs))
	return b.String()
}

func locationMarkdown(loc *model.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", loc.Name)
	fmt.Fprintf(&b, "**Type:** %s  \n**Coordinates:** %.4f, %.4f\n\n",
		loc.Type, loc.GeoLocation.Latitude, loc.GeoLocation.Longitude)
	if loc.Address != "" {
		fmt.Fprintf(&b, "**Address:** %s\n\n", loc.Address)
	}
	if loc.Description != "" {
		b.WriteString(loc.Description + "\n\n")
	}
	fmt.Fprintf(&b, "%d events, %d individuals\n", len(loc.RelatedEventIDs), len(loc.RelatedIndividualIDs))
	return b.String()
}

func eventMarkdown(s *store.Store, ev *model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ev.Name)
	fmt.Fprintf(&b, "**Type:** %s  \n**When:** %s\n\n", ev.Type, ev.Timestamp.Format(time.RFC1123))
	if loc, ok := s.LocationByID(ev.LocationID); ok {
		fmt.Fprintf(&b, "**Where:** %s\n\n", loc.Name)
	}
	if ev.Description != "" {
		b.WriteString(ev.Description + "\n\n")
	}
	if len(ev.RelatedIndividualIDs) > 0 {
		b.WriteString("## Participants\n\n")
		for _, id := range ev.RelatedIndividualIDs {
			if ind, ok := s.IndividualByID(id); ok {
				fmt.Fprintf(&b, "- %s (%s)\n", ind.Name, ind.Role)
			}
		}
	}
	return b.String()
}

func individualMarkdown(s *store.Store, ind *model.Individual) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ind.Name)
	if ind.Alias != "" {
		fmt.Fprintf(&b, "_aka %s_\n\n", ind.Alias)
	}
	fmt.Fprintf(&b, "**Role:** %s\n\n", ind.Role)
	if ind.Description != "" {
		b.WriteString(ind.Description + "\n\n")
	}
	if len(ind.RelatedLocationIDs) > 0 {
		b.WriteString("## Known locations\n\n")
		for _, id := range ind.RelatedLocationIDs {
			if loc, ok := s.LocationByID(id); ok {
				fmt.Fprintf(&b, "- %s (%s)\n", loc.Name, loc.Type)
			}
		}
	}
	fmt.Fprintf(&b, "\n%d events on record\n", len(ind.RelatedEventIDs))
	return b.String()
}

// View renders the viewport content.
func (d DetailPane) View() string {
	return d.viewport.View()
}
