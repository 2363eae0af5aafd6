// Package layout computes force-directed 2-D placements for the
// relationship network. The physics is gonum's Eades layout, treated as a
// black box; callers only consume the resulting coordinates.
package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// Point is a normalized position in [0,1] x [0,1].
type Point struct {
	X float64
	Y float64
}

// Edge names an undirected connection between two node IDs.
type Edge struct {
	From string
	To   string
}

// Positions runs a seeded force-directed layout over the given nodes and
// edges and returns normalized coordinates. The same inputs and seed always
// produce the same placement, so graph renders are stable across frames.
// Edges whose endpoints are not in ids are ignored.
func Positions(ids []string, edges []Edge, seed uint64) map[string]Point {
	if len(ids) == 0 {
		return map[string]Point{}
	}

	index := make(map[string]int64, len(ids))
	g := simple.NewUndirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		f, okF := index[e.From]
		t, okT := index[e.To]
		if !okF || !okT || f == t {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   60,
		Theta:     0.2,
		Src:       rand.NewPCG(seed, seed),
	}
	optimizer := layout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
	}

	// Normalize into the unit square.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range ids {
		c := optimizer.Coord2(index[id])
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY

	out := make(map[string]Point, len(ids))
	for _, id := range ids {
		c := optimizer.Coord2(index[id])
		p := Point{X: 0.5, Y: 0.5}
		if spanX > 0 {
			p.X = (c.X - minX) / spanX
		}
		if spanY > 0 {
			p.Y = (c.Y - minY) / spanY
		}
		out[id] = p
	}
	return out
}
