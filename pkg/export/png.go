package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"git.sr.ht/~sbinet/gg"

	"casevis/pkg/model"
)

// locFill maps location types to marker colors in map snapshots.
var locFill = map[model.LocationType]string{
	model.LocCrimeScene:       "#e06c75",
	model.LocSuspectResidence: "#d19a66",
	model.LocWitnessResidence: "#61afef",
	model.LocVictimResidence:  "#e5c07b",
	model.LocBusiness:         "#98c379",
	model.LocPublicPlace:      "#56b6c2",
	model.LocVehicleLocation:  "#c678dd",
	model.LocMeetingPoint:     "#abb2bf",
	model.LocEvidenceLocation: "#7f848e",
}

const (
	pngMargin       = 48
	pngMarkerRadius = 6
)

// WriteMapPNG renders the given locations as markers on a flat
// equirectangular projection of bounds and writes the PNG to w. Locations
// outside bounds are skipped.
func WriteMapPNG(w io.Writer, locations []model.Location, bounds model.MapBounds, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	lngSpan := bounds.East - bounds.West
	latSpan := bounds.North - bounds.South
	if lngSpan <= 0 || latSpan <= 0 {
		return fmt.Errorf("degenerate map bounds %+v", bounds)
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#1e222a")
	dc.Clear()

	// Frame.
	dc.SetHexColor("#4b5263")
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(pngMargin)/2, float64(pngMargin)/2, float64(width-pngMargin), float64(height-pngMargin))
	dc.Stroke()

	for _, loc := range locations {
		if !bounds.Contains(loc.GeoLocation) {
			continue
		}
		x := float64(pngMargin) + (loc.GeoLocation.Longitude-bounds.West)/lngSpan*float64(width-2*pngMargin)
		// Latitude grows north, pixel rows grow south.
		y := float64(pngMargin) + (bounds.North-loc.GeoLocation.Latitude)/latSpan*float64(height-2*pngMargin)

		fill, ok := locFill[loc.Type]
		if !ok {
			fill = "#abb2bf"
		}
		dc.SetHexColor(fill)
		dc.DrawCircle(x, y, pngMarkerRadius)
		dc.Fill()

		dc.SetHexColor("#abb2bf")
		dc.DrawStringAnchored(loc.Name, x, y+pngMarkerRadius+10, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

// SaveMapPNG writes the map snapshot to a timestamped file in dir and
// returns the file path.
func SaveMapPNG(dir string, locations []model.Location, bounds model.MapBounds, width, height int) (string, error) {
	path, err := SnapshotPath(dir, "map", "png", time.Now())
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := WriteMapPNG(f, locations, bounds, width, height); err != nil {
		return "", err
	}
	return path, nil
}
