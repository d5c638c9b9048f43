package hull

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()

	resolved := geojson.NewFeature(squareMeters(10000, 0))
	resolved.Properties["eapply"] = "Prospect Park"
	fc.Append(resolved)

	fragmented := geojson.NewFeature(multiPart(3))
	fragmented.Properties["eapply"] = "Red Hook Recreation Area"
	fc.Append(fragmented)

	unnamed := geojson.NewFeature(multiPart(2))
	fc.Append(unnamed)

	issues := Classify(fc, "eapply")

	require.Len(t, issues, 2)
	assert.Equal(t, "Red Hook Recreation Area", issues[0].Name)
	assert.Equal(t, geo.UnknownName, issues[1].Name)
}

func TestClassifyResolvedNeverAppears(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(squareMeters(10000, 0)))

	assert.Empty(t, Classify(fc, "eapply"))
}

func TestWriteIssues(t *testing.T) {
	t.Parallel()

	m := fsutil.NewMemoryFileSystem()

	issues := []Issue{
		{Name: "A", Feature: geojson.NewFeature(multiPart(2))},
		{Name: "B", Feature: geojson.NewFeature(multiPart(3))},
	}

	require.NoError(t, WriteIssues(m, "temp/issue_geojson", issues))

	assert.True(t, m.Exists("temp/issue_geojson"))
	assert.Len(t, m.NamesUnder("temp/issue_geojson"), 2)
	assert.True(t, m.Exists("temp/issue_geojson/issue_1.geojson"))
	assert.True(t, m.Exists("temp/issue_geojson/issue_2.geojson"))

	// Each export is a parseable single-feature collection.
	got, err := geo.ReadFeatureCollection(m, "temp/issue_geojson/issue_1.geojson")
	require.NoError(t, err)
	assert.Len(t, got.Features, 1)
}

func TestWriteIssuesNoIssuesNoDirectory(t *testing.T) {
	t.Parallel()

	m := fsutil.NewMemoryFileSystem()
	require.NoError(t, WriteIssues(m, "temp/issue_geojson", nil))
	assert.False(t, m.Exists("temp/issue_geojson"))
}
