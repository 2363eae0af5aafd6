package export_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"casevis/pkg/export"
	"casevis/pkg/layout"
	"casevis/pkg/model"
)

func TestWriteGraphSVG(t *testing.T) {
	individuals := []model.Individual{
		{ID: "ind-1", Name: "Ray Molina", Role: model.RoleSuspect},
		{ID: "ind-2", Name: "Dana Voss", Role: model.RoleWitness},
		{ID: "ind-3", Name: "No Position", Role: model.RoleVictim},
	}
	relationships := []model.Relationship{
		{ID: "rel-1", SourceIndividualID: "ind-1", TargetIndividualID: "ind-2",
			RelationshipType: model.RelWitnessSuspect},
		{ID: "rel-2", SourceIndividualID: "ind-1", TargetIndividualID: "ind-3",
			RelationshipType: model.RelAssociate},
	}
	positions := map[string]layout.Point{
		"ind-1": {X: 0.2, Y: 0.3},
		"ind-2": {X: 0.8, Y: 0.7},
	}

	var buf bytes.Buffer
	if err := export.WriteGraphSVG(&buf, individuals, relationships, positions, 800, 600); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	if !strings.Contains(out, "Ray Molina") || !strings.Contains(out, "Dana Voss") {
		t.Error("positioned individuals missing from output")
	}
	if strings.Contains(out, "No Position") {
		t.Error("individual without a layout position should be skipped")
	}
	if !strings.Contains(out, string(model.RelWitnessSuspect)) {
		t.Error("edge label missing")
	}
	if strings.Contains(out, string(model.RelAssociate)) {
		t.Error("edge with an unpositioned endpoint should be skipped")
	}
}

func TestWriteGraphSVGRejectsBadCanvas(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteGraphSVG(&buf, nil, nil, nil, 0, 600); err == nil {
		t.Error("zero width should be rejected")
	}
}

func TestWriteMapPNG(t *testing.T) {
	locations := []model.Location{
		{ID: "loc-1", Name: "Pier 9", Type: model.LocCrimeScene,
			GeoLocation: model.GeoLocation{Latitude: 33.7, Longitude: -118.2}},
		{ID: "loc-2", Name: "Far Away", Type: model.LocBusiness,
			GeoLocation: model.GeoLocation{Latitude: 51.5, Longitude: -0.1}},
	}
	bounds := model.MapBounds{North: 34.5, South: 33.0, East: -117.0, West: -119.0}

	var buf bytes.Buffer
	if err := export.WriteMapPNG(&buf, locations, bounds, 640, 480); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output does not decode as PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("image is %dx%d, want 640x480", b.Dx(), b.Dy())
	}
}

func TestWriteMapPNGRejectsDegenerateBounds(t *testing.T) {
	var buf bytes.Buffer
	bounds := model.MapBounds{North: 34, South: 34, East: -118, West: -118}
	if err := export.WriteMapPNG(&buf, nil, bounds, 640, 480); err == nil {
		t.Error("zero-span bounds should be rejected")
	}
}

func TestSnapshotPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

	path, err := export.SnapshotPath(dir, "graph", "svg", now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "casevis-graph-20240601-150405.svg" {
		t.Errorf("unexpected snapshot name %s", filepath.Base(path))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("export directory was not created")
	}
}

func TestSaveGraphSVGWritesFile(t *testing.T) {
	dir := t.TempDir()
	positions := map[string]layout.Point{"ind-1": {X: 0.5, Y: 0.5}}
	individuals := []model.Individual{{ID: "ind-1", Name: "Ray", Role: model.RoleSuspect}}

	path, err := export.SaveGraphSVG(dir, individuals, nil, positions, 400, 300)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("saved file is not an SVG document")
	}
}
