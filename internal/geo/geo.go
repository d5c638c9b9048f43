// Package geo holds the GeoJSON feature model shared by the pipeline
// and the analysis tools. It is a thin layer over paulmach/orb: feature
// collections are orb/geojson values, and helpers here cover the
// handful of questions the pipeline keeps asking of a geometry (how
// many polygonal parts, how big in square meters, what is the feature
// called).
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/yz3440/nyc-park-study/internal/units"
)

// UnknownName is the sentinel used when a feature has no usable
// display-name property.
const UnknownName = "(no eapply value)"

// PartCount returns the number of polygonal parts in g: 1 for a
// Polygon, the part count for a MultiPolygon, and 0 for anything else.
func PartCount(g orb.Geometry) int {
	switch v := g.(type) {
	case orb.Polygon:
		return 1
	case orb.MultiPolygon:
		return len(v)
	default:
		return 0
	}
}

// IsMultiPart reports whether g is a MultiPolygon with more than one
// disjoint part, i.e. a candidate for hull computation.
func IsMultiPart(g orb.Geometry) bool {
	mp, ok := g.(orb.MultiPolygon)
	return ok && len(mp) > 1
}

// AreaSqMeters returns the planar area of g converted from square
// degrees to square meters via the flat conversion constant.
func AreaSqMeters(g orb.Geometry) float64 {
	return units.SqDegreesToSqMeters(math.Abs(planar.Area(g)))
}

// StringProperty returns the named property if present and a string.
func StringProperty(f *geojson.Feature, key string) (string, bool) {
	v, ok := f.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DisplayName returns the feature's display-name property, or the
// UnknownName sentinel when absent or not a string.
func DisplayName(f *geojson.Feature, key string) string {
	if s, ok := StringProperty(f, key); ok {
		return s
	}
	return UnknownName
}

// CloneFeature returns a deep copy of f: geometry, properties and ID.
// The pipeline never mutates a geometry in place, but the same input
// feature feeds both output collections, so each gets its own copy.
func CloneFeature(f *geojson.Feature) *geojson.Feature {
	out := geojson.NewFeature(orb.Clone(f.Geometry))
	out.ID = f.ID
	out.Properties = f.Properties.Clone()
	return out
}

// SerializeGeometry renders g as a GeoJSON geometry document string.
func SerializeGeometry(g orb.Geometry) (string, error) {
	data, err := geojson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseGeometry is the inverse of SerializeGeometry.
func ParseGeometry(s string) (orb.Geometry, error) {
	g, err := geojson.UnmarshalGeometry([]byte(s))
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}
