package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetersDegreesRoundTrip(t *testing.T) {
	t.Parallel()

	for _, m := range []float64{0, 1, 50, 111319.9, 1e6} {
		deg := MetersToDegrees(m)
		assert.InDelta(t, m, DegreesToMeters(deg), 1e-6)
	}
}

func TestOneDegreeIsConstant(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 111319.9, DegreesToMeters(1), 1e-9)
	assert.InDelta(t, 1.0, MetersToDegrees(111319.9), 1e-12)
}

func TestAreaConversion(t *testing.T) {
	t.Parallel()

	// One square degree is the constant squared.
	assert.InDelta(t, MetersPerDegree*MetersPerDegree, SqDegreesToSqMeters(1), 1e-3)

	sqDeg := SqMetersToSqDegrees(500)
	assert.InDelta(t, 500, SqDegreesToSqMeters(sqDeg), 1e-9)
}
