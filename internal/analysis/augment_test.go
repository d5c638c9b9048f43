package analysis

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAugmentSingleSquare(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(squareAt(10000, 0)))

	require.NoError(t, Augment(stubGeometer{}, fc))
	props := fc.Features[0].Properties

	assert.InDelta(t, 10000, props["area_sqm"].(float64), 1e-3)
	assert.InDelta(t, 400, props["perimeter_m"].(float64), 1e-3)
	assert.Equal(t, 5, props["num_vertices"])
	assert.Equal(t, 1, props["num_polygons"])

	side := squareSide(10000)
	assert.InDelta(t, side/2, props["centroid_lon"].(float64), 1e-12)
	assert.InDelta(t, side/2, props["centroid_lat"].(float64), 1e-12)

	assert.InDelta(t, 100, props["bbox_width"].(float64), 1e-6)
	assert.InDelta(t, 100, props["bbox_height"].(float64), 1e-6)
	assert.InDelta(t, 1, props["aspect_ratio"].(float64), 1e-9)

	// The stub convex hull is the square itself.
	assert.InDelta(t, 10000, props["convex_hull_area"].(float64), 1e-3)
	assert.InDelta(t, 1, props["convexity_ratio"].(float64), 1e-9)
	serialized, ok := props[ConvexHullProperty].(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(serialized, `"type":"Polygon"`))

	assert.Equal(t, []float64{props["area_sqm"].(float64)}, props["polygon_areas_desc"])
	assert.InDelta(t, 1, props["polygon_area_ratio"].(float64), 1e-9)
}

func TestAugmentMultiPartAreas(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.MultiPolygon{squareAt(25, 1), squareAt(100, 0)}))

	require.NoError(t, Augment(stubGeometer{}, fc))
	props := fc.Features[0].Properties

	assert.Equal(t, 2, props["num_polygons"])
	areas := props["polygon_areas_desc"].([]float64)
	require.Len(t, areas, 2)
	assert.InDelta(t, 100, areas[0], 1e-6, "sorted descending")
	assert.InDelta(t, 25, areas[1], 1e-6)
	assert.InDelta(t, 100, props["largest_polygon_area"].(float64), 1e-6)
	assert.InDelta(t, 25, props["smallest_polygon_area"].(float64), 1e-6)
	assert.InDelta(t, 4, props["polygon_area_ratio"].(float64), 1e-9)
}

func TestAugmentDegeneratePartRatioOmitted(t *testing.T) {
	t.Parallel()

	// Second part has zero area: the ratio would be infinite, so it
	// must be left unset.
	degenerate := orb.Polygon{{{2, 2}, {2, 2}, {2, 2}, {2, 2}}}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.MultiPolygon{squareAt(100, 0), degenerate}))

	require.NoError(t, Augment(stubGeometer{}, fc))
	props := fc.Features[0].Properties

	assert.InDelta(t, 0, props["smallest_polygon_area"].(float64), 1e-12)
	_, present := props["polygon_area_ratio"]
	assert.False(t, present)
}
