// Package hull implements the adaptive concave-hull pipeline: per-feature
// selection, the bounded threshold-escalation search, the tiny-fragment
// sieve, issue classification and assembly of the two output collections.
//
// The concave hull computation itself is behind the Engine interface; the
// production implementation lives in internal/geosengine, and tests drive
// the search with scripted stubs.
package hull

import "github.com/paulmach/orb"

// Engine computes concave hulls of polygonal geometries.
type Engine interface {
	// ConcaveHullOfPolygons returns a hull enclosing the polygons of g.
	// maxEdgeDeg is the maximum edge length of the hull in angular
	// degrees; smaller values follow the input more tightly. tight keeps
	// the hull boundary on the input polygon vertices; allowHoles
	// permits holes in the result. An error means the engine rejected
	// the parameters for this geometry, which the searcher treats as
	// recoverable.
	ConcaveHullOfPolygons(g orb.Geometry, maxEdgeDeg float64, tight, allowHoles bool) (orb.Geometry, error)
}
