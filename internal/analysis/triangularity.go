package analysis

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"github.com/yz3440/nyc-park-study/internal/units"
)

// TriangularityAnalysis describes how close a hull is to a triangle,
// found by searching for the Douglas-Peucker tolerance that simplifies
// the hull down to three vertices.
type TriangularityAnalysis struct {
	TriangleVertices    [][]float64 `json:"triangle_vertices"`
	TriangleNumVertices *int        `json:"triangle_num_vertices"`
	TriangleAreaSqm     *float64    `json:"triangle_area_sqm"`
	TrianglePerimeterM  *float64    `json:"triangle_perimeter_m"`
	Triangularity       *float64    `json:"triangularity"`
	DpToleranceM        *float64    `json:"dp_tolerance"`
	TriangleEdgeLengths []float64   `json:"triangle_edge_lengths"`
	TriangleRegularity  *float64    `json:"triangle_regularity"`
}

// triangleSearchIterations bounds the tolerance binary search.
const triangleSearchIterations = 200

// ComputeTriangularity binary-searches the simplification tolerance
// for a 3-vertex result. When exactly three vertices are unreachable,
// the closest achieved simplification is used instead.
func ComputeTriangularity(hull orb.Geometry) TriangularityAnalysis {
	poly, ok := asPolygon(hull)
	if !ok {
		return TriangularityAnalysis{}
	}

	minTol := 0.0
	maxTol := planar.Length(poly) * 2
	tol := units.MetersToDegrees(1)
	converged := units.MetersToDegrees(0.00001)

	var best orb.Polygon
	bestVertices := math.MaxInt32
	var found orb.Polygon
	var foundTol float64

	for i := 0; i < triangleSearchIterations; i++ {
		clone := orb.Clone(poly).(orb.Polygon)
		result := simplify.DouglasPeucker(tol).Simplify(clone)

		simplified, isPoly := asPolygon(result)
		if !isPoly || len(simplified) == 0 {
			// Over-simplified: back off.
			maxTol = tol
			tol = (minTol + maxTol) / 2
			continue
		}

		n := len(exteriorVertices(simplified))
		if abs(n-3) < abs(bestVertices-3) {
			best = simplified
			bestVertices = n
		}

		if n == 3 {
			found = simplified
			foundTol = tol
			break
		} else if n > 3 {
			minTol = tol
		} else {
			maxTol = tol
		}
		tol = (minTol + maxTol) / 2

		if maxTol-minTol < converged {
			break
		}
	}

	if found == nil {
		found = best
		foundTol = tol
	}
	if found == nil {
		return TriangularityAnalysis{}
	}

	verts := exteriorVertices(found)
	ta := TriangularityAnalysis{
		TriangleVertices:    coordsOf(verts),
		TriangleNumVertices: ptrInt(len(verts)),
		TriangleAreaSqm:     ptr(areaSqMeters(found)),
		TrianglePerimeterM:  ptr(perimeterMeters(found)),
		DpToleranceM:        ptr(units.DegreesToMeters(foundTol)),
	}

	if *ta.TriangleAreaSqm > 0 {
		ta.Triangularity = ptr(areaSqMeters(hull) / *ta.TriangleAreaSqm)
	}

	if len(verts) >= 3 {
		edges := make([]float64, 0, len(verts))
		shortest, longest := math.MaxFloat64, 0.0
		for i := range verts {
			length := distanceMeters(verts[i], verts[(i+1)%len(verts)])
			edges = append(edges, length)
			shortest = math.Min(shortest, length)
			longest = math.Max(longest, length)
		}
		ta.TriangleEdgeLengths = edges
		if longest > 0 {
			// 1.0 means equilateral.
			ta.TriangleRegularity = ptr(shortest / longest)
		}
	}

	return ta
}

func ptrInt(v int) *int { return &v }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
