package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"casevis/pkg/layout"
	"casevis/pkg/model"
)

// layoutSeed keeps node placement stable across recomputes.
const layoutSeed = 1

// GraphView renders the relationship network for the individuals currently
// visible on the map. Selecting a node asks the map to pan to that
// individual's first related location.
type GraphView struct {
	theme  Theme
	width  int
	height int

	individuals   []model.Individual
	relationships []model.Relationship
	positions     map[string]layout.Point

	cursor int
}

// NewGraphView creates an empty graph panel.
func NewGraphView(theme Theme) GraphView {
	return GraphView{theme: theme, positions: map[string]layout.Point{}}
}

// SetSize sets the content area in cells.
func (g *GraphView) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetData replaces the graph contents and recomputes the layout. The cursor
// is preserved by individual ID when that node is still present.
func (g *GraphView) SetData(individuals []model.Individual, relationships []model.Relationship) {
	var keep string
	if sel, ok := g.Selected(); ok {
		keep = sel.ID
	}

	g.individuals = individuals
	g.relationships = relationships

	ids := make([]string, len(individuals))
	for i, ind := range individuals {
		ids[i] = ind.ID
	}
	edges := make([]layout.Edge, len(relationships))
	for i, rel := range relationships {
		edges[i] = layout.Edge{From: rel.SourceIndividualID, To: rel.TargetIndividualID}
	}
	g.positions = layout.Positions(ids, edges, layoutSeed)

	g.cursor = 0
	for i, ind := range individuals {
		if ind.ID == keep {
			g.cursor = i
			break
		}
	}
}

// Positions exposes the current node layout for snapshot export.
func (g GraphView) Positions() map[string]layout.Point { return g.positions }

// MoveCursor advances the node cursor.
func (g *GraphView) MoveCursor(delta int) {
	if len(g.individuals) == 0 {
		g.cursor = 0
		return
	}
	g.cursor = ((g.cursor+delta)%len(g.individuals) + len(g.individuals)) % len(g.individuals)
}

// Selected returns the individual under the cursor, if any.
func (g GraphView) Selected() (model.Individual, bool) {
	if len(g.individuals) == 0 || g.cursor >= len(g.individuals) {
		return model.Individual{}, false
	}
	return g.individuals[g.cursor], true
}

// DegreeOf counts relationships touching the given individual.
func (g GraphView) DegreeOf(id string) int {
	n := 0
	for _, rel := range g.relationships {
		if rel.SourceIndividualID == id || rel.TargetIndividualID == id {
			n++
		}
	}
	return n
}

// Render draws nodes and edge endpoints onto a cell grid. Terminal cells
// are too coarse for line drawing, so edges show as a connection count per
// node and a neighbor list for the selected node.
func (g GraphView) Render() string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}
	if len(g.individuals) == 0 {
		return g.theme.Renderer.NewStyle().Foreground(g.theme.Muted).
			Render("no individuals in view")
	}

	gridH := g.height - 2
	if gridH < 1 {
		gridH = 1
	}

	type mark struct {
		label string
		color string
		hot   bool
	}
	rows := make([][]mark, gridH)
	for i := range rows {
		rows[i] = make([]mark, g.width)
	}

	for i, ind := range g.individuals {
		p, ok := g.positions[ind.ID]
		if !ok {
			continue
		}
		row := int(p.Y * float64(gridH-1))
		col := int(p.X * float64(g.width-1))

		label := "◉" + runewidth.Truncate(ind.Name, 12, "…")
		if col+runewidth.StringWidth(label) > g.width {
			col = g.width - runewidth.StringWidth(label)
			if col < 0 {
				col = 0
			}
		}
		rows[row][col] = mark{label: label, color: string(RoleColor(ind.Role)), hot: i == g.cursor}
	}

	var b strings.Builder
	for _, cells := range rows {
		col := 0
		for col < g.width {
			mk := cells[col]
			if mk.label == "" {
				b.WriteByte(' ')
				col++
				continue
			}
			style := g.theme.Renderer.NewStyle().Foreground(lipgloss.Color(mk.color))
			if mk.hot {
				style = style.Reverse(true).Bold(true)
			}
			b.WriteString(style.Render(mk.label))
			col += runewidth.StringWidth(mk.label)
		}
		b.WriteByte('\n')
	}

	if sel, ok := g.Selected(); ok {
		line := fmt.Sprintf("%s (%s)  %d links", sel.Name, sel.Role, g.DegreeOf(sel.ID))
		neighbors := g.neighborNames(sel.ID)
		if len(neighbors) > 0 {
			line += ": " + strings.Join(neighbors, ", ")
		}
		b.WriteString(g.theme.Renderer.NewStyle().Foreground(g.theme.Subtext).
			Render(runewidth.Truncate(line, g.width, "…")))
	}
	return b.String()
}

func (g GraphView) neighborNames(id string) []string {
	byID := make(map[string]string, len(g.individuals))
	for _, ind := range g.individuals {
		byID[ind.ID] = ind.Name
	}
	seen := make(map[string]bool)
	var names []string
	for _, rel := range g.relationships {
		other := ""
		switch id {
		case rel.SourceIndividualID:
			other = rel.TargetIndividualID
		case rel.TargetIndividualID:
			other = rel.SourceIndividualID
		default:
			continue
		}
		if name, ok := byID[other]; ok && !seen[other] {
			seen[other] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
