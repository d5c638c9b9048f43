package analysis

import (
	"fmt"
	"log"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/yz3440/nyc-park-study/internal/geo"
	"github.com/yz3440/nyc-park-study/internal/units"
)

// ConvexHullProperty carries the serialized convex-hull geometry on an
// augmented feature.
const ConvexHullProperty = "convex_hull_polygon"

// Augment adds the basic geometric fields to every feature in fc:
// area, perimeter, vertex and part counts, centroid, bounding box,
// convex-hull metrics and per-part area statistics. Features are
// modified in place.
func Augment(geom Geometer, fc *geojson.FeatureCollection) error {
	for i, f := range fc.Features {
		if err := augmentFeature(geom, f); err != nil {
			return fmt.Errorf("augment feature %d (%s): %w", i, geo.DisplayName(f, "eapply"), err)
		}
		if (i+1)%500 == 0 {
			log.Printf("augmented %d/%d features", i+1, len(fc.Features))
		}
	}
	return nil
}

func augmentFeature(geom Geometer, f *geojson.Feature) error {
	g := f.Geometry
	if f.Properties == nil {
		f.Properties = geojson.Properties{}
	}
	props := f.Properties

	area := areaSqMeters(g)
	props["area_sqm"] = area
	props["perimeter_m"] = perimeterMeters(g)
	props["num_vertices"] = vertexCount(g)
	props["num_polygons"] = geo.PartCount(g)

	centroid, _ := planar.CentroidArea(g)
	props["centroid_lon"] = centroid[0]
	props["centroid_lat"] = centroid[1]

	bound := g.Bound()
	width := units.DegreesToMeters(bound.Max[0] - bound.Min[0])
	height := units.DegreesToMeters(bound.Max[1] - bound.Min[1])
	props["bbox_width"] = width
	props["bbox_height"] = height
	if height > 0 {
		props["aspect_ratio"] = width / height
	}

	hull, err := geom.ConvexHull(g)
	if err != nil {
		return fmt.Errorf("convex hull: %w", err)
	}
	hullArea := areaSqMeters(hull)
	props["convex_hull_area"] = hullArea
	if hullArea > 0 {
		props["convexity_ratio"] = area / hullArea
	}
	serialized, err := geo.SerializeGeometry(hull)
	if err != nil {
		return fmt.Errorf("serialize convex hull: %w", err)
	}
	props[ConvexHullProperty] = serialized

	areas := partAreasDescending(g)
	props["polygon_areas_desc"] = areas
	largest, smallest := 0.0, 0.0
	if len(areas) > 0 {
		largest = areas[0]
		smallest = areas[len(areas)-1]
	}
	props["largest_polygon_area"] = largest
	props["smallest_polygon_area"] = smallest
	// The ratio is left unset when the smallest part is degenerate,
	// since infinity does not survive JSON encoding.
	if smallest > 0 {
		props["polygon_area_ratio"] = largest / smallest
	}

	return nil
}

// partAreasDescending returns the area of each polygonal part of g in
// square meters, largest first.
func partAreasDescending(g orb.Geometry) []float64 {
	var parts []orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		parts = []orb.Polygon{v}
	case orb.MultiPolygon:
		parts = v
	default:
		return nil
	}

	areas := make([]float64, 0, len(parts))
	for _, p := range parts {
		areas = append(areas, areaSqMeters(p))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(areas)))
	return areas
}
