package analysis

import (
	"math"

	"github.com/paulmach/orb"
)

// CircleAnalysis holds the circle-family compactness metrics of a hull.
// Optional fields are nil when the underlying quantity is undefined
// (zero perimeter or area).
type CircleAnalysis struct {
	ChAreaSqm                 float64  `json:"ch_area_sqm"`
	ChPerimeterM              float64  `json:"ch_perimeter_m"`
	PolsbyPopper              *float64 `json:"polsby_popper"`
	Schwartzberg              *float64 `json:"schwartzberg"`
	ReockCompactness          *float64 `json:"reock_compactness"`
	CircumscribedCircleRadius *float64 `json:"circumscribed_circle_radius"`
	CircumscribedCircleArea   *float64 `json:"circumscribed_circle_area"`
}

// ComputeCircleAnalysis derives the compactness metrics of a hull
// polygon.
//
// The minimum bounding circle is approximated by the circumradius
// around the bounding-box center: the farthest vertex from that center
// defines the circle. This over-estimates the true minimum circle
// slightly, so Reock values here are a lower bound.
func ComputeCircleAnalysis(hull orb.Geometry) CircleAnalysis {
	area := areaSqMeters(hull)
	perimeter := perimeterMeters(hull)

	ca := CircleAnalysis{
		ChAreaSqm:    area,
		ChPerimeterM: perimeter,
	}

	// Polsby-Popper: 4*pi*A / P^2, 1 for a perfect circle.
	if perimeter > 0 {
		ca.PolsbyPopper = ptr(4 * math.Pi * area / (perimeter * perimeter))
	}

	// Schwartzberg: P / (2*pi*sqrt(A/pi)), 1 for a circle, grows for
	// less compact shapes.
	if area > 0 {
		ca.Schwartzberg = ptr(perimeter / (2 * math.Pi * math.Sqrt(area/math.Pi)))
	}

	radius := circumradiusMeters(hull)
	if radius > 0 {
		circleArea := math.Pi * radius * radius
		ca.ReockCompactness = ptr(area / circleArea)
		ca.CircumscribedCircleRadius = ptr(radius)
		ca.CircumscribedCircleArea = ptr(circleArea)
	}

	return ca
}

// circumradiusMeters returns the distance from the bounding-box center
// of g to its farthest vertex, in meters.
func circumradiusMeters(g orb.Geometry) float64 {
	bound := g.Bound()
	center := orb.Point{
		(bound.Min[0] + bound.Max[0]) / 2,
		(bound.Min[1] + bound.Max[1]) / 2,
	}

	var polys []orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{v}
	case orb.MultiPolygon:
		polys = v
	default:
		return 0
	}

	var maxDist float64
	for _, p := range polys {
		for _, pt := range exteriorVertices(p) {
			if d := distanceMeters(center, pt); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}
