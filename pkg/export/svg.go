// Package export renders snapshots of the current visualization state to
// files: the relationship network as SVG and the map panel as PNG.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	svg "github.com/ajstarks/svgo"

	"casevis/pkg/layout"
	"casevis/pkg/model"
)

// roleFill maps individual roles to SVG fill colors. Kept in sync with the
// role palette used by the terminal theme.
var roleFill = map[model.IndividualRole]string{
	model.RoleSuspect:          "#e06c75",
	model.RoleVictim:           "#e5c07b",
	model.RoleWitness:          "#61afef",
	model.RolePersonOfInterest: "#c678dd",
	model.RoleInformant:        "#56b6c2",
	model.RoleLawEnforcement:   "#98c379",
}

const (
	svgMargin     = 60
	svgNodeRadius = 14
)

// WriteGraphSVG renders the relationship network to w. Positions are
// normalized unit-square coordinates keyed by individual ID, typically from
// layout.Positions. Individuals without a position are skipped, as are
// relationships with a missing endpoint.
func WriteGraphSVG(w io.Writer, individuals []model.Individual, relationships []model.Relationship, positions map[string]layout.Point, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	px := func(p layout.Point) (int, int) {
		x := svgMargin + int(p.X*float64(width-2*svgMargin))
		y := svgMargin + int(p.Y*float64(height-2*svgMargin))
		return x, y
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1e222a")

	// Edges first so nodes draw on top.
	for _, rel := range relationships {
		from, okF := positions[rel.SourceIndividualID]
		to, okT := positions[rel.TargetIndividualID]
		if !okF || !okT {
			continue
		}
		x1, y1 := px(from)
		x2, y2 := px(to)
		canvas.Line(x1, y1, x2, y2, "stroke:#4b5263;stroke-width:1.5")
		mx, my := (x1+x2)/2, (y1+y2)/2
		canvas.Text(mx, my-4, string(rel.RelationshipType), "fill:#7f848e;font-size:10px;font-family:monospace;text-anchor:middle")
	}

	for _, ind := range individuals {
		p, ok := positions[ind.ID]
		if !ok {
			continue
		}
		x, y := px(p)
		fill, ok := roleFill[ind.Role]
		if !ok {
			fill = "#abb2bf"
		}
		canvas.Circle(x, y, svgNodeRadius, "fill:"+fill+";stroke:#1e222a;stroke-width:2")
		canvas.Text(x, y+svgNodeRadius+14, ind.Name, "fill:#abb2bf;font-size:12px;font-family:monospace;text-anchor:middle")
	}

	canvas.End()
	return nil
}

// SnapshotPath builds a timestamped file name inside dir, creating dir if
// needed. kind is a short tag like "graph" or "map".
func SnapshotPath(dir, kind, ext string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	name := fmt.Sprintf("casevis-%s-%s.%s", kind, now.Format("20060102-150405"), ext)
	return filepath.Join(dir, name), nil
}

// SaveGraphSVG writes the network snapshot to a timestamped file in dir and
// returns the file path.
func SaveGraphSVG(dir string, individuals []model.Individual, relationships []model.Relationship, positions map[string]layout.Point, width, height int) (string, error) {
	path, err := SnapshotPath(dir, "graph", "svg", time.Now())
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := WriteGraphSVG(f, individuals, relationships, positions, width, height); err != nil {
		return "", err
	}
	return path, nil
}
