package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"casevis/pkg/filter"
	"casevis/pkg/model"
)

type optionKind int

const (
	optHeader optionKind = iota
	optCase
	optLocationType
	optEventType
	optRole
)

type optionRow struct {
	kind  optionKind
	label string

	caseID     string
	caseStatus model.CaseStatus
	locType    model.LocationType
	evtType    model.EventType
	role       model.IndividualRole
}

// OptionsPanel lists every filter toggle grouped by section. Toggling a row
// writes through the filter store; the checkmarks always render from the
// latest snapshot, so the panel cannot drift from the real state.
type OptionsPanel struct {
	theme  Theme
	width  int
	height int

	rows   []optionRow
	cursor int
	offset int
}

// NewOptionsPanel builds the toggle list for the given cases.
func NewOptionsPanel(theme Theme, cases []model.Case) OptionsPanel {
	p := OptionsPanel{theme: theme}
	p.rows = buildOptionRows(cases)
	p.cursor = firstToggleRow(p.rows)
	return p
}

func buildOptionRows(cases []model.Case) []optionRow {
	var rows []optionRow
	rows = append(rows, optionRow{kind: optHeader, label: "CASES"})
	for _, c := range cases {
		rows = append(rows, optionRow{kind: optCase, label: c.Name, caseID: c.ID, caseStatus: c.Status})
	}
	rows = append(rows, optionRow{kind: optHeader, label: "LOCATION TYPES"})
	for _, lt := range model.LocationTypes {
		rows = append(rows, optionRow{kind: optLocationType, label: string(lt), locType: lt})
	}
	rows = append(rows, optionRow{kind: optHeader, label: "EVENT TYPES"})
	for _, et := range model.EventTypes {
		rows = append(rows, optionRow{kind: optEventType, label: string(et), evtType: et})
	}
	rows = append(rows, optionRow{kind: optHeader, label: "ROLES"})
	for _, r := range model.IndividualRoles {
		rows = append(rows, optionRow{kind: optRole, label: string(r), role: r})
	}
	return rows
}

func firstToggleRow(rows []optionRow) int {
	for i, r := range rows {
		if r.kind != optHeader {
			return i
		}
	}
	return 0
}

// SetSize sets the content area in cells.
func (p *OptionsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetCases rebuilds the case section after a data reload.
func (p *OptionsPanel) SetCases(cases []model.Case) {
	p.rows = buildOptionRows(cases)
	if p.cursor >= len(p.rows) {
		p.cursor = firstToggleRow(p.rows)
	}
}

// MoveCursor steps over rows, skipping section headers.
func (p *OptionsPanel) MoveCursor(delta int) {
	if len(p.rows) == 0 {
		return
	}
	i := p.cursor
	for {
		i = ((i+delta)%len(p.rows) + len(p.rows)) % len(p.rows)
		if p.rows[i].kind != optHeader {
			break
		}
	}
	p.cursor = i
}

// Toggle flips the filter under the cursor through the store.
func (p *OptionsPanel) Toggle(st *filter.Store) {
	if p.cursor >= len(p.rows) {
		return
	}
	row := p.rows[p.cursor]
	switch row.kind {
	case optCase:
		st.ToggleCase(row.caseID)
	case optLocationType:
		st.ToggleLocationType(row.locType)
	case optEventType:
		st.ToggleEventType(row.evtType)
	case optRole:
		st.ToggleRole(row.role)
	}
}

func (p OptionsPanel) checked(s filter.State, row optionRow) bool {
	switch row.kind {
	case optCase:
		for _, id := range s.SelectedCaseIDs {
			if id == row.caseID {
				return true
			}
		}
	case optLocationType:
		for _, lt := range s.SelectedLocationTypes {
			if lt == row.locType {
				return true
			}
		}
	case optEventType:
		for _, et := range s.SelectedEventTypes {
			if et == row.evtType {
				return true
			}
		}
	case optRole:
		for _, r := range s.SelectedRoles {
			if r == row.role {
				return true
			}
		}
	}
	return false
}

// Render draws the visible window of toggle rows against the given state.
func (p OptionsPanel) Render(s filter.State) string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	// Keep the cursor inside the scroll window.
	offset := p.offset
	if p.cursor < offset {
		offset = p.cursor
	}
	if p.cursor >= offset+p.height {
		offset = p.cursor - p.height + 1
	}

	headerStyle := p.theme.Renderer.NewStyle().Foreground(p.theme.Primary).Bold(true)
	rowStyle := p.theme.Renderer.NewStyle().Foreground(p.theme.Text)
	hotStyle := p.theme.Renderer.NewStyle().Foreground(p.theme.Text).Reverse(true)

	var b strings.Builder
	end := offset + p.height
	if end > len(p.rows) {
		end = len(p.rows)
	}
	for i := offset; i < end; i++ {
		row := p.rows[i]
		var line string
		switch row.kind {
		case optHeader:
			line = headerStyle.Render(row.label)
		default:
			// Truncate before styling so the cut never lands inside an
			// escape sequence.
			text := runewidth.Truncate(Checkbox(row.label, p.checked(s, row)), p.width-5, "…")
			if i == p.cursor {
				line = hotStyle.Render(text)
			} else {
				line = rowStyle.Render(text)
			}
			if row.kind == optCase {
				line += " " + RenderCaseStatusBadge(row.caseStatus)
			}
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
