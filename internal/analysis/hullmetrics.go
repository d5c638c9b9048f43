package analysis

import (
	"fmt"
	"log"

	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/geo"
	"github.com/yz3440/nyc-park-study/internal/hull"
)

// Shape-metric property blocks attached by AnnotateShapeMetrics.
const (
	CirclePropertyKey         = "circle_analysis"
	RectangularityPropertyKey = "rectangularity_analysis"
	TriangularityPropertyKey  = "triangularity_analysis"
)

// AnnotateShapeMetrics attaches the three shape-metric blocks to every
// feature carrying a serialized concave hull. Features without a hull
// get explicit null blocks so downstream consumers can tell "analyzed,
// no hull" from "never analyzed". Features are modified in place.
func AnnotateShapeMetrics(geom Geometer, fc *geojson.FeatureCollection) error {
	analyzed := 0
	for i, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		serialized, ok := geo.StringProperty(f, hull.HullProperty)
		if !ok || serialized == "" {
			f.Properties[CirclePropertyKey] = nil
			f.Properties[RectangularityPropertyKey] = nil
			f.Properties[TriangularityPropertyKey] = nil
			continue
		}

		hullGeom, err := geo.ParseGeometry(serialized)
		if err != nil {
			return fmt.Errorf("feature %d (%s): parse hull: %w", i, geo.DisplayName(f, "eapply"), err)
		}

		f.Properties[CirclePropertyKey] = ComputeCircleAnalysis(hullGeom)

		originalArea := -1.0
		if v, ok := f.Properties["area_sqm"].(float64); ok {
			originalArea = v
		}
		ra, err := ComputeRectangularity(geom, hullGeom, originalArea)
		if err != nil {
			return fmt.Errorf("feature %d (%s): %w", i, geo.DisplayName(f, "eapply"), err)
		}
		f.Properties[RectangularityPropertyKey] = ra

		f.Properties[TriangularityPropertyKey] = ComputeTriangularity(hullGeom)

		analyzed++
		if analyzed%100 == 0 {
			log.Printf("analyzed %d hulls", analyzed)
		}
	}
	log.Printf("shape metrics attached to %d of %d features", analyzed, len(fc.Features))
	return nil
}
