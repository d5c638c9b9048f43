package hull

import (
	"github.com/paulmach/orb"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

// SieveTinyFragment applies the stray-fragment heuristic to a hull
// result. When g is a MultiPolygon of exactly two parts and exactly one
// of them is strictly below cutoffSqMeters, the small part is treated
// as noise: the larger part alone is returned along with the elided
// area in square meters.
//
// Escalating the search threshold far enough to absorb such a sliver
// would distort the boundary of the real part, so dropping beats
// merging here. Anything else (other part counts, both parts tiny,
// both parts real) is returned unchanged and left for issue
// classification.
func SieveTinyFragment(g orb.Geometry, cutoffSqMeters float64) (orb.Geometry, float64, bool) {
	mp, ok := g.(orb.MultiPolygon)
	if !ok || len(mp) != 2 {
		return g, 0, false
	}

	area0 := geo.AreaSqMeters(mp[0])
	area1 := geo.AreaSqMeters(mp[1])

	tiny0 := area0 < cutoffSqMeters
	tiny1 := area1 < cutoffSqMeters
	if tiny0 == tiny1 {
		// Both tiny or both real: no single obvious noise part.
		return g, 0, false
	}

	if tiny0 {
		return mp[1], area0, true
	}
	return mp[0], area1, true
}
