package hull

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

func newPipeline(t *testing.T, engine Engine, tuning Tuning) *Pipeline {
	t.Helper()
	p, err := NewPipeline(engine, tuning)
	require.NoError(t, err)
	return p
}

func TestPipelineOrderAndCountPreserved(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()

	point := geojson.NewFeature(orb.Point{1, 2})
	point.ID = "f0"
	fc.Append(point)

	single := geojson.NewFeature(squareMeters(10000, 0))
	single.ID = "f1"
	fc.Append(single)

	multi := namedFeature("Prospect Park")
	multi.ID = "f2"
	fc.Append(multi)

	engine := &stubEngine{script: []stubStep{{geom: squareMeters(10000, 0)}}}
	p := newPipeline(t, engine, testTuning())

	res, err := p.Run(fc)
	require.NoError(t, err)

	require.Len(t, res.Hulls.Features, 3)
	require.Len(t, res.Annotated.Features, 3)
	for i, want := range []interface{}{"f0", "f1", "f2"} {
		assert.Equal(t, want, res.Hulls.Features[i].ID)
		assert.Equal(t, want, res.Annotated.Features[i].ID)
	}
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 0, res.Skipped)
}

func TestPipelinePassThroughIdempotence(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	point := geojson.NewFeature(orb.Point{1, 2})
	fc.Append(point)
	line := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	fc.Append(line)
	single := geojson.NewFeature(squareMeters(10000, 0))
	fc.Append(single)
	onePartMulti := geojson.NewFeature(orb.MultiPolygon{squareMeters(10000, 0)})
	fc.Append(onePartMulti)

	engine := &stubEngine{script: []stubStep{{err: errors.New("must not be called")}}}
	p := newPipeline(t, engine, testTuning())

	res, err := p.Run(fc)
	require.NoError(t, err)

	assert.Empty(t, engine.calls, "pass-through features must bypass the engine")
	for i := range fc.Features {
		assert.Empty(t, cmp.Diff(fc.Features[i].Geometry, res.Hulls.Features[i].Geometry))
		assert.Empty(t, cmp.Diff(fc.Features[i].Geometry, res.Annotated.Features[i].Geometry))
		assert.NotContains(t, res.Annotated.Features[i].Properties, HullProperty)
	}
	assert.Equal(t, 4, res.Processed)
}

func TestPipelineWhitelistGating(t *testing.T) {
	t.Parallel()

	tuning := testTuning()
	tuning.Whitelist = []string{"Prospect Park"}

	fc := geojson.NewFeatureCollection()
	listed := namedFeature("Prospect Park")
	fc.Append(listed)
	unlisted := namedFeature("Central Park")
	fc.Append(unlisted)

	engine := &stubEngine{script: []stubStep{{geom: squareMeters(10000, 0)}}}
	p := newPipeline(t, engine, tuning)

	res, err := p.Run(fc)
	require.NoError(t, err)

	assert.Len(t, engine.calls, 1)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)

	// The skipped feature's geometry is identical to the input in both
	// outputs, with no hull annotation.
	assert.Empty(t, cmp.Diff(unlisted.Geometry, res.Hulls.Features[1].Geometry))
	assert.Empty(t, cmp.Diff(unlisted.Geometry, res.Annotated.Features[1].Geometry))
	assert.NotContains(t, res.Annotated.Features[1].Properties, HullProperty)

	// The listed feature got a hull and an annotation.
	assert.Equal(t, 1, geo.PartCount(res.Hulls.Features[0].Geometry))
	assert.Contains(t, res.Annotated.Features[0].Properties, HullProperty)
}

func TestPipelineAnnotationCarriesSerializedHull(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(namedFeature("Prospect Park"))

	engine := &stubEngine{script: []stubStep{{geom: squareMeters(10000, 0)}}}
	p := newPipeline(t, engine, testTuning())

	res, err := p.Run(fc)
	require.NoError(t, err)

	annotated := res.Annotated.Features[0]
	serialized, ok := annotated.Properties[HullProperty].(string)
	require.True(t, ok)
	assert.Contains(t, serialized, `"type":"Polygon"`)

	// The annotated output keeps the original multi-part geometry.
	assert.Empty(t, cmp.Diff(fc.Features[0].Geometry, annotated.Geometry))
}

func TestPipelineTinyFragmentSieve(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(namedFeature("Grand Army Plaza"))

	// The search "converges" on a two-part hull with one 10 sq m sliver.
	big := squareMeters(5000, 1)
	hull := orb.MultiPolygon{squareMeters(10, 0), big}
	engine := &stubEngine{script: []stubStep{{geom: hull}}}

	p := newPipeline(t, engine, testTuning())
	res, err := p.Run(fc)
	require.NoError(t, err)

	assert.Equal(t, 1, res.TinyRemoved)
	assert.Empty(t, cmp.Diff(orb.Geometry(big), res.Hulls.Features[0].Geometry))
	assert.Empty(t, res.Issues, "a sieved feature is not an issue")
}

func TestPipelineIssueClassification(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	fc.Append(namedFeature("Red Hook Recreation Area"))
	fc.Append(namedFeature("Prospect Park"))

	engine := &stubEngine{script: []stubStep{
		// First feature: stuck at three parts for all attempts.
		{geom: multiPart(3)}, {geom: multiPart(3)}, {geom: multiPart(3)},
		{geom: multiPart(3)}, {geom: multiPart(3)},
		// Second feature: resolves immediately.
		{geom: squareMeters(10000, 0)},
	}}

	p := newPipeline(t, engine, testTuning())
	res, err := p.Run(fc)
	require.NoError(t, err)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, "Red Hook Recreation Area", res.Issues[0].Name)
	assert.Equal(t, 3, geo.PartCount(res.Issues[0].Feature.Geometry))

	require.Len(t, res.Searches, 2)
	assert.Equal(t, OutcomeFragmented, res.Searches[0].Outcome.Kind)
	assert.Equal(t, OutcomeResolved, res.Searches[1].Outcome.Kind)
}

func TestPipelineEngineFailureKeepsOriginalGeometry(t *testing.T) {
	t.Parallel()

	fc := geojson.NewFeatureCollection()
	f := namedFeature("Broadway Malls 59th-110th")
	fc.Append(f)

	engine := &stubEngine{script: []stubStep{{err: errors.New("bad geometry")}}}
	p := newPipeline(t, engine, testTuning())

	res, err := p.Run(fc)
	require.NoError(t, err, "engine failures never abort the run")

	// Best available geometry is the original; it remains multi-part
	// and therefore becomes an issue, with no hull annotation.
	assert.Empty(t, cmp.Diff(f.Geometry, res.Hulls.Features[0].Geometry))
	assert.NotContains(t, res.Annotated.Features[0].Properties, HullProperty)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "Broadway Malls 59th-110th", res.Issues[0].Name)
}

func TestNewPipelineRejectsInvalidTuning(t *testing.T) {
	t.Parallel()

	tuning := DefaultTuning()
	tuning.MaxAttempts = 0
	_, err := NewPipeline(&stubEngine{}, tuning)
	assert.Error(t, err)
}
