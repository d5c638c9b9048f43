// Package filter splits the source parks dataset by type category: the
// categories worth studying are kept, maintenance lots, strips,
// parkways and similar non-park parcels are set aside.
package filter

import (
	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

// CategoryProperty is the feature property the filter inspects.
const CategoryProperty = "typecategory"

// DefaultWhitelist lists the type categories kept by default. The
// excluded remainder covers Lot, Strip, Operations, Retired N/A,
// Parkway, Mall and Undeveloped.
func DefaultWhitelist() []string {
	return []string{
		"Triangle/Plaza",
		"Garden",
		"Neighborhood Park",
		"Jointly Operated Playground",
		"Playground",
		"Community Park",
		"Nature Area",
		"Recreational Field/Courts",
		"Waterfront Facility",
		"Flagship Park",
		"Managed Sites",
		"Historic House Park",
		"Cemetery",
	}
}

// Filter partitions fc into kept and removed collections by the
// typecategory whitelist. Features with a missing or non-string
// category are removed. Input features are shared, not copied; input
// order is preserved in both outputs.
func Filter(fc *geojson.FeatureCollection, whitelist []string) (kept, removed *geojson.FeatureCollection) {
	allowed := make(map[string]struct{}, len(whitelist))
	for _, w := range whitelist {
		allowed[w] = struct{}{}
	}

	kept = geojson.NewFeatureCollection()
	removed = geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		category, ok := geo.StringProperty(f, CategoryProperty)
		if !ok {
			removed.Append(f)
			continue
		}
		if _, ok := allowed[category]; ok {
			kept.Append(f)
		} else {
			removed.Append(f)
		}
	}
	return kept, removed
}
