package analysis

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// RectangularityAnalysis describes how well a hull fills its minimum
// rotated rectangle.
type RectangularityAnalysis struct {
	MrrVertices        [][]float64 `json:"mrr_vertices"`
	MrrWidth           *float64    `json:"mrr_width"`
	MrrHeight          *float64    `json:"mrr_height"`
	MrrRotationDegrees *float64    `json:"mrr_rotation_degrees"`
	MrrAreaSqm         float64     `json:"mrr_area_sqm"`
	MrrRectangularity  *float64    `json:"mrr_rectangularity"`
	MrrOriginalRatio   *float64    `json:"mrr_original_ratio"`
}

// ComputeRectangularity fits the minimum rotated rectangle around the
// hull and derives its dimensions, orientation and fill ratios.
// originalAreaSqm is the area of the feature's original multi-part
// geometry; pass a negative value when unknown to omit the ratio.
func ComputeRectangularity(geom Geometer, hull orb.Geometry, originalAreaSqm float64) (RectangularityAnalysis, error) {
	mrrGeom, err := geom.MinimumRotatedRectangle(hull)
	if err != nil {
		return RectangularityAnalysis{}, fmt.Errorf("minimum rotated rectangle: %w", err)
	}

	mrr, ok := asPolygon(mrrGeom)
	if !ok {
		return RectangularityAnalysis{}, fmt.Errorf("minimum rotated rectangle is not a polygon")
	}

	ra := RectangularityAnalysis{
		MrrAreaSqm: areaSqMeters(mrr),
	}

	// Keep the closing duplicate point in the stored vertices, the way
	// the rectangle is serialized as a ring.
	if len(mrr) > 0 {
		ra.MrrVertices = coordsOf(mrr[0])
	}

	coords := exteriorVertices(mrr)
	if len(coords) >= 4 {
		edge1 := distanceMeters(coords[0], coords[1])
		edge2 := distanceMeters(coords[1], coords[2])

		width := math.Max(edge1, edge2)
		height := math.Min(edge1, edge2)
		ra.MrrWidth = ptr(width)
		ra.MrrHeight = ptr(height)

		// Orientation of the longer edge, counterclockwise from east,
		// normalized to [0, 180) for the rectangle's symmetry.
		var a, b orb.Point
		if edge1 >= edge2 {
			a, b = coords[0], coords[1]
		} else {
			a, b = coords[1], coords[2]
		}
		rotation := math.Atan2(b[1]-a[1], b[0]-a[0]) * 180 / math.Pi
		for rotation < 0 {
			rotation += 180
		}
		for rotation >= 180 {
			rotation -= 180
		}
		ra.MrrRotationDegrees = ptr(rotation)
	}

	if ra.MrrAreaSqm > 0 {
		ra.MrrRectangularity = ptr(areaSqMeters(hull) / ra.MrrAreaSqm)
		if originalAreaSqm >= 0 {
			ra.MrrOriginalRatio = ptr(originalAreaSqm / ra.MrrAreaSqm)
		}
	}

	return ra, nil
}
