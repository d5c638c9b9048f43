package hull

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSieveDropsSingleTinyFragment(t *testing.T) {
	t.Parallel()

	big := squareMeters(5000, 1)
	tiny := squareMeters(10, 0)

	got, elided, ok := SieveTinyFragment(orb.MultiPolygon{tiny, big}, 500)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(orb.Geometry(big), got))
	assert.InDelta(t, 10, elided, 1)

	// Part order must not matter.
	got, elided, ok = SieveTinyFragment(orb.MultiPolygon{big, tiny}, 500)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(orb.Geometry(big), got))
	assert.InDelta(t, 10, elided, 1)
}

func TestSieveKeepsBothWhenBothBelowCutoff(t *testing.T) {
	t.Parallel()

	mp := orb.MultiPolygon{squareMeters(400, 0), squareMeters(450, 1)}
	got, _, ok := SieveTinyFragment(mp, 500)

	assert.False(t, ok)
	assert.Empty(t, cmp.Diff(orb.Geometry(mp), got))
}

func TestSieveKeepsBothWhenBothAboveCutoff(t *testing.T) {
	t.Parallel()

	mp := orb.MultiPolygon{squareMeters(600, 0), squareMeters(5000, 1)}
	got, _, ok := SieveTinyFragment(mp, 500)

	assert.False(t, ok)
	assert.Empty(t, cmp.Diff(orb.Geometry(mp), got))
}

func TestSieveIgnoresOtherPartCounts(t *testing.T) {
	t.Parallel()

	t.Run("three parts", func(t *testing.T) {
		t.Parallel()
		mp := orb.MultiPolygon{squareMeters(10, 0), squareMeters(5000, 1), squareMeters(5000, 2)}
		got, _, ok := SieveTinyFragment(mp, 500)
		assert.False(t, ok)
		assert.Empty(t, cmp.Diff(orb.Geometry(mp), got))
	})

	t.Run("single polygon", func(t *testing.T) {
		t.Parallel()
		p := squareMeters(10, 0)
		got, _, ok := SieveTinyFragment(p, 500)
		assert.False(t, ok)
		assert.Empty(t, cmp.Diff(orb.Geometry(p), got))
	})

	t.Run("non-polygonal geometry", func(t *testing.T) {
		t.Parallel()
		pt := orb.Point{0, 0}
		got, _, ok := SieveTinyFragment(pt, 500)
		assert.False(t, ok)
		assert.Equal(t, orb.Geometry(pt), got)
	})
}
