package geo

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/fsutil"
)

// ReadFeatureCollection parses a GeoJSON FeatureCollection document.
func ReadFeatureCollection(fsys fsutil.FileSystem, path string) (*geojson.FeatureCollection, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fc, nil
}

// WriteFeatureCollection serializes fc to path.
func WriteFeatureCollection(fsys fsutil.FileSystem, path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize feature collection: %w", err)
	}

	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFeature writes a single feature wrapped in its own
// FeatureCollection document, the format used for issue exports.
func WriteFeature(fsys fsutil.FileSystem, path string, f *geojson.Feature) error {
	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return WriteFeatureCollection(fsys, path, fc)
}
