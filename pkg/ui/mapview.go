package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"casevis/pkg/model"
)

// Zoom level limits. Each step in or out halves or doubles the visible span.
const (
	MinZoom = 1
	MaxZoom = 15
)

// MapView renders locations as markers on a flat lat/lng grid. Its bounds
// and zoom are the source of the viewport filter: every change is reported
// back to the app, which writes it into the filter state.
type MapView struct {
	theme  Theme
	width  int
	height int

	bounds model.MapBounds
	zoom   int

	cursor int
}

// NewMapView creates a map over the given initial viewport.
func NewMapView(theme Theme, bounds model.MapBounds, zoom int) MapView {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	return MapView{theme: theme, bounds: bounds, zoom: zoom}
}

// SetSize sets the content area in cells.
func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Bounds returns the current viewport.
func (m MapView) Bounds() model.MapBounds { return m.bounds }

// Zoom returns the current zoom level.
func (m MapView) Zoom() int { return m.zoom }

// Pan shifts the viewport by the given fraction of its span. Positive dx
// moves east, positive dy moves north.
func (m *MapView) Pan(dx, dy float64) {
	lngSpan := m.bounds.East - m.bounds.West
	latSpan := m.bounds.North - m.bounds.South
	m.bounds.West += dx * lngSpan
	m.bounds.East += dx * lngSpan
	m.bounds.South += dy * latSpan
	m.bounds.North += dy * latSpan
}

// CenterOn recenters the viewport on a coordinate without changing its span.
func (m *MapView) CenterOn(lat, lng float64) {
	lngSpan := m.bounds.East - m.bounds.West
	latSpan := m.bounds.North - m.bounds.South
	m.bounds.West = lng - lngSpan/2
	m.bounds.East = lng + lngSpan/2
	m.bounds.South = lat - latSpan/2
	m.bounds.North = lat + latSpan/2
}

// ZoomIn halves the visible span around the center.
func (m *MapView) ZoomIn() {
	if m.zoom >= MaxZoom {
		return
	}
	m.zoom++
	m.scaleSpan(0.5)
}

// ZoomOut doubles the visible span around the center.
func (m *MapView) ZoomOut() {
	if m.zoom <= MinZoom {
		return
	}
	m.zoom--
	m.scaleSpan(2)
}

func (m *MapView) scaleSpan(factor float64) {
	c := m.bounds.Center()
	lngHalf := (m.bounds.East - m.bounds.West) / 2 * factor
	latHalf := (m.bounds.North - m.bounds.South) / 2 * factor
	m.bounds.West = c.Longitude - lngHalf
	m.bounds.East = c.Longitude + lngHalf
	m.bounds.South = c.Latitude - latHalf
	m.bounds.North = c.Latitude + latHalf
}

// FitTo resizes the viewport to cover all given locations with a small
// margin. Zoom resets to the minimum level. No-op when locations is empty.
func (m *MapView) FitTo(locations []model.Location) {
	if len(locations) == 0 {
		return
	}
	first := locations[0].GeoLocation
	b := model.MapBounds{North: first.Latitude, South: first.Latitude, East: first.Longitude, West: first.Longitude}
	for _, loc := range locations[1:] {
		g := loc.GeoLocation
		if g.Latitude > b.North {
			b.North = g.Latitude
		}
		if g.Latitude < b.South {
			b.South = g.Latitude
		}
		if g.Longitude > b.East {
			b.East = g.Longitude
		}
		if g.Longitude < b.West {
			b.West = g.Longitude
		}
	}
	latPad := (b.North - b.South) * 0.1
	lngPad := (b.East - b.West) * 0.1
	if latPad == 0 {
		latPad = 0.05
	}
	if lngPad == 0 {
		lngPad = 0.05
	}
	b.North += latPad
	b.South -= latPad
	b.East += lngPad
	b.West -= lngPad
	m.bounds = b
	m.zoom = MinZoom
	m.cursor = 0
}

// MoveCursor advances the marker cursor through the in-view locations.
func (m *MapView) MoveCursor(locations []model.Location, delta int) {
	inView := m.inView(locations)
	if len(inView) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = ((m.cursor+delta)%len(inView) + len(inView)) % len(inView)
}

// CursorLocation returns the location under the cursor, if any.
func (m MapView) CursorLocation(locations []model.Location) (model.Location, bool) {
	inView := m.inView(locations)
	if len(inView) == 0 {
		return model.Location{}, false
	}
	if m.cursor >= len(inView) {
		return inView[0], true
	}
	return inView[m.cursor], true
}

func (m MapView) inView(locations []model.Location) []model.Location {
	var out []model.Location
	for _, loc := range locations {
		if m.bounds.Contains(loc.GeoLocation) {
			out = append(out, loc)
		}
	}
	return out
}

// cell converts a coordinate to a grid cell, or ok=false when out of view.
func (m MapView) cell(g model.GeoLocation) (row, col int, ok bool) {
	if m.width <= 0 || m.height <= 0 || !m.bounds.Contains(g) {
		return 0, 0, false
	}
	lngSpan := m.bounds.East - m.bounds.West
	latSpan := m.bounds.North - m.bounds.South
	if lngSpan <= 0 || latSpan <= 0 {
		return 0, 0, false
	}
	col = int((g.Longitude - m.bounds.West) / lngSpan * float64(m.width-1))
	row = int((m.bounds.North - g.Latitude) / latSpan * float64(m.height-1))
	return row, col, true
}

// Render draws the marker grid with a status line underneath.
func (m MapView) Render(locations []model.Location) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	type mark struct {
		glyph string
		color string
		hot   bool
	}
	grid := make(map[[2]int]mark)

	inView := m.inView(locations)
	for i, loc := range inView {
		row, col, ok := m.cell(loc.GeoLocation)
		if !ok {
			continue
		}
		grid[[2]int{row, col}] = mark{
			glyph: LocationGlyph(loc.Type),
			color: string(LocationColor(loc.Type)),
			hot:   i == m.cursor,
		}
	}

	var b strings.Builder
	dot := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render("·")
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if mk, ok := grid[[2]int{row, col}]; ok {
				style := m.theme.Renderer.NewStyle().Foreground(lipgloss.Color(mk.color))
				if mk.hot {
					style = style.Reverse(true).Bold(true)
				}
				b.WriteString(style.Render(mk.glyph))
				continue
			}
			if row%4 == 0 && col%8 == 0 {
				b.WriteString(dot)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("z%d  lat %.2f..%.2f  lng %.2f..%.2f  %d in view",
		m.zoom, m.bounds.South, m.bounds.North, m.bounds.West, m.bounds.East, len(inView))
	if loc, ok := m.CursorLocation(locations); ok {
		status += "  " + runewidth.Truncate(loc.Name, 24, "…")
	}
	b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render(
		runewidth.Truncate(status, m.width, "…")))
	return b.String()
}
