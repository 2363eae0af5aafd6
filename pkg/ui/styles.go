package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"casevis/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with domain semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Case status colors
	ColorCaseOpen    = lipgloss.Color("#50FA7B")
	ColorCaseClosed  = lipgloss.Color("#6272A4")
	ColorCasePending = lipgloss.Color("#FFB86C")

	// Case status background colors (for badges)
	ColorCaseOpenBg    = lipgloss.Color("#1A3D2A")
	ColorCaseClosedBg  = lipgloss.Color("#2A2A3D")
	ColorCasePendingBg = lipgloss.Color("#3D2A1A")
)

// roleColors maps individual roles to their accent color.
var roleColors = map[model.IndividualRole]lipgloss.Color{
	model.RoleSuspect:          lipgloss.Color("#FF5555"),
	model.RoleVictim:           lipgloss.Color("#F1FA8C"),
	model.RoleWitness:          lipgloss.Color("#8BE9FD"),
	model.RolePersonOfInterest: lipgloss.Color("#BD93F9"),
	model.RoleInformant:        lipgloss.Color("#FF79C6"),
	model.RoleLawEnforcement:   lipgloss.Color("#50FA7B"),
}

// locationColors maps location types to their marker color.
var locationColors = map[model.LocationType]lipgloss.Color{
	model.LocCrimeScene:       lipgloss.Color("#FF5555"),
	model.LocSuspectResidence: lipgloss.Color("#FFB86C"),
	model.LocWitnessResidence: lipgloss.Color("#8BE9FD"),
	model.LocVictimResidence:  lipgloss.Color("#F1FA8C"),
	model.LocBusiness:         lipgloss.Color("#50FA7B"),
	model.LocPublicPlace:      lipgloss.Color("#69FFD6"),
	model.LocVehicleLocation:  lipgloss.Color("#BD93F9"),
	model.LocMeetingPoint:     lipgloss.Color("#FF79C6"),
	model.LocEvidenceLocation: lipgloss.Color("#BFBFBF"),
}

// locationGlyphs gives each location type a distinct map marker.
var locationGlyphs = map[model.LocationType]string{
	model.LocCrimeScene:       "✖",
	model.LocSuspectResidence: "⌂",
	model.LocWitnessResidence: "⌂",
	model.LocVictimResidence:  "⌂",
	model.LocBusiness:         "■",
	model.LocPublicPlace:      "●",
	model.LocVehicleLocation:  "▲",
	model.LocMeetingPoint:     "◆",
	model.LocEvidenceLocation: "★",
}

// RoleColor returns the accent color for a role.
func RoleColor(role model.IndividualRole) lipgloss.Color {
	if c, ok := roleColors[role]; ok {
		return c
	}
	return ColorSubtext
}

// LocationColor returns the marker color for a location type.
func LocationColor(t model.LocationType) lipgloss.Color {
	if c, ok := locationColors[t]; ok {
		return c
	}
	return ColorSubtext
}

// LocationGlyph returns the map marker rune for a location type.
func LocationGlyph(t model.LocationType) string {
	if g, ok := locationGlyphs[t]; ok {
		return g
	}
	return "●"
}

// RenderCaseStatusBadge returns a styled case status badge
func RenderCaseStatusBadge(status model.CaseStatus) string {
	var fg, bg lipgloss.Color
	var label string

	switch status {
	case model.CaseOpen:
		fg, bg, label = ColorCaseOpen, ColorCaseOpenBg, "OPEN"
	case model.CaseClosed:
		fg, bg, label = ColorCaseClosed, ColorCaseClosedBg, "CLSD"
	case model.CasePending:
		fg, bg, label = ColorCasePending, ColorCasePendingBg, "PEND"
	default:
		fg, bg, label = ColorMuted, ColorBgSubtle, "????"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Render(label)
}

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(t.Primary).Render(bar)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// Checkbox renders a selection toggle line.
func Checkbox(label string, checked bool) string {
	if checked {
		return "[x] " + label
	}
	return "[ ] " + label
}
