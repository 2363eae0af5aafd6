package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// rangeEdge names which slider endpoint an edit targets.
type rangeEdge int

const (
	edgeNone rangeEdge = iota
	edgeStart
	edgeEnd
)

// Timeline is the play-head slider over the active date range. It mirrors
// the range and head from the filter state; every edit is handed back to
// the app to write through the filter store.
type Timeline struct {
	theme Theme
	width int

	start *time.Time
	end   *time.Time
	head  *time.Time

	editing rangeEdge
	input   textinput.Model
	editErr string
}

// NewTimeline creates an empty timeline panel.
func NewTimeline(theme Theme) Timeline {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	return Timeline{theme: theme, input: ti}
}

// SetSize sets the content width in cells.
func (t *Timeline) SetSize(width int) { t.width = width }

// SetRange updates the slider range and re-clamps the head into it.
func (t *Timeline) SetRange(start, end *time.Time) {
	t.start = start
	t.end = end
	t.head = t.clamp(t.head)
}

// SetHead moves the play head, clamped into the current range.
func (t *Timeline) SetHead(head *time.Time) {
	t.head = t.clamp(head)
}

// Head returns the current play head.
func (t Timeline) Head() *time.Time { return t.head }

// Range returns the current slider range.
func (t Timeline) Range() (start, end *time.Time) { return t.start, t.end }

// Percent reports the head position within the range in [0,1]. A missing
// head or a degenerate range reads as 100%, meaning no time cutoff.
func (t Timeline) Percent() float64 {
	if t.start == nil || t.end == nil || t.head == nil {
		return 1
	}
	span := t.end.Sub(*t.start)
	if span <= 0 {
		return 1
	}
	p := float64(t.head.Sub(*t.start)) / float64(span)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// StepDays moves the head by whole days, clamped into the range. Returns
// the new head and whether anything changed.
func (t *Timeline) StepDays(days int) (*time.Time, bool) {
	if t.head == nil {
		if t.end == nil {
			return nil, false
		}
		h := *t.end
		t.head = &h
		return t.head, true
	}
	next := t.head.AddDate(0, 0, days)
	clamped := t.clamp(&next)
	if clamped != nil && t.head != nil && clamped.Equal(*t.head) {
		return t.head, false
	}
	t.head = clamped
	return t.head, true
}

// JumpToPercent places the head at a fraction of the range.
func (t *Timeline) JumpToPercent(p float64) (*time.Time, bool) {
	if t.start == nil || t.end == nil {
		return nil, false
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	h := t.start.Add(time.Duration(p * float64(t.end.Sub(*t.start))))
	t.head = t.clamp(&h)
	return t.head, true
}

// ShiftRange moves one range endpoint by whole days. Edits that would
// invert the range are rejected.
func (t *Timeline) ShiftRange(startDays, endDays int) bool {
	if t.start == nil || t.end == nil {
		return false
	}
	newStart := t.start.AddDate(0, 0, startDays)
	newEnd := t.end.AddDate(0, 0, endDays)
	if newEnd.Before(newStart) {
		return false
	}
	t.start = &newStart
	t.end = &newEnd
	t.head = t.clamp(t.head)
	return true
}

// Editing reports whether a date entry field is open.
func (t Timeline) Editing() bool { return t.editing != edgeNone }

// BeginEditStart opens date entry for the range start.
func (t *Timeline) BeginEditStart() { t.beginEdit(edgeStart, t.start) }

// BeginEditEnd opens date entry for the range end.
func (t *Timeline) BeginEditEnd() { t.beginEdit(edgeEnd, t.end) }

func (t *Timeline) beginEdit(edge rangeEdge, current *time.Time) {
	t.editing = edge
	t.editErr = ""
	if current != nil {
		t.input.SetValue(current.Format("2006-01-02"))
	} else {
		t.input.SetValue("")
	}
	t.input.CursorEnd()
	t.input.Focus()
}

// HandleEditKey feeds a key into the open date entry. It reports whether
// the range changed; entries that fail to parse or would invert the range
// keep the field open with an inline error.
func (t *Timeline) HandleEditKey(msg tea.KeyMsg) (changed bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		t.editing = edgeNone
		t.input.Blur()
		return false, nil
	case "enter":
		parsed, err := time.Parse("2006-01-02", t.input.Value())
		if err != nil {
			t.editErr = "use YYYY-MM-DD"
			return false, nil
		}
		switch t.editing {
		case edgeStart:
			if t.end != nil && parsed.After(*t.end) {
				t.editErr = "start is after end"
				return false, nil
			}
			t.start = &parsed
		case edgeEnd:
			if t.start != nil && parsed.Before(*t.start) {
				t.editErr = "end is before start"
				return false, nil
			}
			t.end = &parsed
		}
		t.head = t.clamp(t.head)
		t.editing = edgeNone
		t.input.Blur()
		return true, nil
	}

	t.input, cmd = t.input.Update(msg)
	return false, cmd
}

// clamp confines a head into [start, end]. The head may be nil; nil range
// endpoints leave that side unconstrained.
func (t Timeline) clamp(head *time.Time) *time.Time {
	if head == nil {
		return nil
	}
	h := *head
	if t.start != nil && h.Before(*t.start) {
		h = *t.start
	}
	if t.end != nil && h.After(*t.end) {
		h = *t.end
	}
	return &h
}

// Render draws the slider with its date labels.
func (t Timeline) Render() string {
	if t.width <= 0 {
		return ""
	}

	fmtDate := func(tm *time.Time) string {
		if tm == nil {
			return "----------"
		}
		return tm.Format("2006-01-02")
	}

	if t.editing != edgeNone {
		which := "range start"
		if t.editing == edgeEnd {
			which = "range end"
		}
		line := which + ": " + t.input.View()
		if t.editErr != "" {
			line += "  " + t.theme.Renderer.NewStyle().Foreground(t.theme.Danger).Render(t.editErr)
		}
		return line
	}

	label := fmt.Sprintf("%s  ◄ %s ►  %s", fmtDate(t.start), fmtDate(t.head), fmtDate(t.end))
	barWidth := t.width - 2
	if barWidth < 1 {
		barWidth = 1
	}
	bar := RenderMiniBar(t.Percent(), barWidth, t.theme)

	style := t.theme.Renderer.NewStyle().Foreground(t.theme.Subtext)
	return style.Render(runewidth.Truncate(label, t.width, "…")) + "\n" + bar
}
