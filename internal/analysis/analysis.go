// Package analysis computes the derived geometric properties of the
// parks dataset and of the hulls the pipeline produces: the basic
// augmentation fields, the shape metrics (circle, rectangle and
// triangle families) and the distribution summaries used in reports.
//
// All metric lengths and areas are derived from angular degrees via
// the flat conversion constant in internal/units.
package analysis

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/yz3440/nyc-park-study/internal/units"
)

// Geometer supplies the geometry-engine operations the analysis needs
// beyond what orb computes natively. internal/geosengine implements it.
type Geometer interface {
	ConvexHull(g orb.Geometry) (orb.Geometry, error)
	MinimumRotatedRectangle(g orb.Geometry) (orb.Geometry, error)
}

// ptr is a small helper for the optional metric fields.
func ptr(v float64) *float64 { return &v }

// perimeterMeters returns the boundary length of g in meters.
func perimeterMeters(g orb.Geometry) float64 {
	return units.DegreesToMeters(planar.Length(g))
}

// areaSqMeters returns the planar area of g in square meters.
func areaSqMeters(g orb.Geometry) float64 {
	return units.SqDegreesToSqMeters(math.Abs(planar.Area(g)))
}

// vertexCount counts the exterior-ring vertices of a polygonal
// geometry, closing points included.
func vertexCount(g orb.Geometry) int {
	switch v := g.(type) {
	case orb.Polygon:
		if len(v) == 0 {
			return 0
		}
		return len(v[0])
	case orb.MultiPolygon:
		n := 0
		for _, p := range v {
			if len(p) > 0 {
				n += len(p[0])
			}
		}
		return n
	default:
		return 0
	}
}

// exteriorVertices returns the exterior ring of p without the closing
// duplicate point.
func exteriorVertices(p orb.Polygon) []orb.Point {
	if len(p) == 0 || len(p[0]) == 0 {
		return nil
	}
	ring := p[0]
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// coordsOf converts points to [lon, lat] pairs for storage in
// properties.
func coordsOf(pts []orb.Point) [][]float64 {
	out := make([][]float64, 0, len(pts))
	for _, p := range pts {
		out = append(out, []float64{p[0], p[1]})
	}
	return out
}

// distanceMeters returns the planar distance between two points in
// meters.
func distanceMeters(a, b orb.Point) float64 {
	return units.DegreesToMeters(planar.Distance(a, b))
}

// asPolygon normalizes single-part results: a Polygon is returned
// as-is, a one-part MultiPolygon is unwrapped, anything else reports
// false.
func asPolygon(g orb.Geometry) (orb.Polygon, bool) {
	switch v := g.(type) {
	case orb.Polygon:
		return v, true
	case orb.MultiPolygon:
		if len(v) == 1 {
			return v[0], true
		}
	}
	return nil, false
}
