package model

// MapBounds is the geographic rectangle currently visible on the map,
// in decimal degrees.
type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the coordinate falls within the bounds.
// Edges are inclusive.
func (b MapBounds) Contains(c GeoLocation) bool {
	return c.Latitude >= b.South && c.Latitude <= b.North &&
		c.Longitude >= b.West && c.Longitude <= b.East
}

// Center returns the midpoint of the bounds.
func (b MapBounds) Center() GeoLocation {
	return GeoLocation{
		Latitude:  (b.North + b.South) / 2,
		Longitude: (b.East + b.West) / 2,
	}
}
