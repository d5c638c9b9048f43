package hull

import (
	"fmt"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
)

// Issue records a feature whose hull remained split into multiple
// parts after the search and the tiny-fragment sieve.
type Issue struct {
	// Name is the feature's display name, or the sentinel when absent.
	Name string

	// Feature carries the residual multi-part geometry and the
	// feature's properties, ready for export.
	Feature *geojson.Feature
}

// Classify scans the hull-only collection and returns one issue per
// feature whose geometry is still a MultiPolygon with more than one
// part. Features resolved to a single part never appear.
func Classify(fc *geojson.FeatureCollection, nameProperty string) []Issue {
	var issues []Issue
	for _, f := range fc.Features {
		if !geo.IsMultiPart(f.Geometry) {
			continue
		}
		issues = append(issues, Issue{
			Name:    geo.DisplayName(f, nameProperty),
			Feature: geo.CloneFeature(f),
		})
	}
	return issues
}

// WriteIssues exports each issue as its own single-feature GeoJSON
// document named issue_<n>.geojson (1-based) in dir, creating the
// directory on demand. A write failure is fatal to the run, so it is
// returned rather than logged.
func WriteIssues(fsys fsutil.FileSystem, dir string, issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create issue directory %s: %w", dir, err)
	}

	for i, issue := range issues {
		path := filepath.Join(dir, fmt.Sprintf("issue_%d.geojson", i+1))
		if err := geo.WriteFeature(fsys, path, issue.Feature); err != nil {
			return fmt.Errorf("failed to write issue %d: %w", i+1, err)
		}
	}
	return nil
}
