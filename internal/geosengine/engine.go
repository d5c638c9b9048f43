// Package geosengine adapts the GEOS geometry library (via
// twpayne/go-geos) to the engine interfaces used by the hull pipeline
// and the analysis tools. Geometries cross the boundary as GeoJSON, so
// the rest of the repository stays on orb values and never sees a GEOS
// handle.
//
// go-geos reports GEOS exceptions as panics; this package converts
// them into ordinary errors at the boundary, which the adaptive search
// treats as recoverable.
package geosengine

import (
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-geos"
)

// Engine wraps a GEOS context. A context is not safe for concurrent
// use, so all operations serialize on the mutex; the pipeline is
// sequential anyway.
type Engine struct {
	mu  sync.Mutex
	ctx *geos.Context
}

// New creates an engine with a fresh GEOS context.
func New() *Engine {
	return &Engine{ctx: geos.NewContext()}
}

// ConcaveHullOfPolygons computes a concave hull enclosing the polygons
// of g. maxEdgeDeg is the longest acceptable hull edge in angular
// degrees. GEOSConcaveHullOfPolygons itself takes a length ratio in
// [0,1] (0 keeps the input polygons, 1 is the convex hull), so the
// absolute length is normalized against the bound diagonal of g before
// the call.
func (e *Engine) ConcaveHullOfPolygons(g orb.Geometry, maxEdgeDeg float64, tight, allowHoles bool) (result orb.Geometry, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverGEOS(&err)

	gg, err := e.toGEOS(g)
	if err != nil {
		return nil, err
	}
	defer gg.Destroy()

	hull := gg.ConcaveHullOfPolygons(lengthRatio(g, maxEdgeDeg), tight, allowHoles)
	defer hull.Destroy()

	return e.fromGEOS(hull)
}

// lengthRatio maps an absolute edge length in degrees onto the length
// ratio GEOS expects, using the diagonal of g's bounding box as the
// reference extent. The mapping is an approximation of the absolute
// contract, but it is monotonic in maxEdgeDeg, which is what the
// escalating search depends on. A degenerate bound maps to 1.
func lengthRatio(g orb.Geometry, maxEdgeDeg float64) float64 {
	b := g.Bound()
	diag := math.Hypot(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	if diag <= 0 {
		return 1
	}
	r := maxEdgeDeg / diag
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ConvexHull computes the convex hull of g.
func (e *Engine) ConvexHull(g orb.Geometry) (result orb.Geometry, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverGEOS(&err)

	gg, err := e.toGEOS(g)
	if err != nil {
		return nil, err
	}
	defer gg.Destroy()

	hull := gg.ConvexHull()
	defer hull.Destroy()

	return e.fromGEOS(hull)
}

// MinimumRotatedRectangle computes the minimum-area rotated rectangle
// enclosing g.
func (e *Engine) MinimumRotatedRectangle(g orb.Geometry) (result orb.Geometry, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer recoverGEOS(&err)

	gg, err := e.toGEOS(g)
	if err != nil {
		return nil, err
	}
	defer gg.Destroy()

	mrr := gg.MinimumRotatedRectangle()
	defer mrr.Destroy()

	return e.fromGEOS(mrr)
}

// toGEOS converts an orb geometry into a GEOS geometry via GeoJSON.
func (e *Engine) toGEOS(g orb.Geometry) (*geos.Geom, error) {
	data, err := geojson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize geometry for GEOS: %w", err)
	}

	gg, err := e.ctx.NewGeomFromGeoJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("GEOS rejected geometry: %w", err)
	}
	return gg, nil
}

// fromGEOS converts a GEOS geometry back to an orb geometry.
func (e *Engine) fromGEOS(gg *geos.Geom) (orb.Geometry, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(gg.ToGeoJSON(-1)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse GEOS result: %w", err)
	}
	return geom.Geometry(), nil
}

// recoverGEOS converts a go-geos panic into an error.
func recoverGEOS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("GEOS: %v", r)
	}
}
