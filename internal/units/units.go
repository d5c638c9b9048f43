// Package units provides shared constants and conversions between
// real-world metric lengths and the angular degree units carried by
// WGS84 geometries.
//
// The conversion uses a single flat meters-per-degree constant. This is
// an approximation that ignores latitude; it is accurate enough at the
// scale of the NYC parks dataset and is kept deliberately because the
// hull thresholds were tuned against it. Swapping it for a
// latitude-dependent projection would require re-tuning the thresholds.
package units

// MetersPerDegree is the approximate ground length of one degree of
// longitude/latitude near the dataset's region.
const MetersPerDegree = 111319.9

// SqMetersPerSqDegree converts planar areas computed in square degrees
// to square meters.
const SqMetersPerSqDegree = MetersPerDegree * MetersPerDegree

// MetersToDegrees converts a ground distance in meters to angular degrees.
func MetersToDegrees(m float64) float64 {
	return m / MetersPerDegree
}

// DegreesToMeters converts an angular distance in degrees to ground meters.
func DegreesToMeters(deg float64) float64 {
	return deg * MetersPerDegree
}

// SqDegreesToSqMeters converts a planar area in square degrees to square meters.
func SqDegreesToSqMeters(sqDeg float64) float64 {
	return sqDeg * SqMetersPerSqDegree
}

// SqMetersToSqDegrees converts an area in square meters to square degrees.
func SqMetersToSqDegrees(sqM float64) float64 {
	return sqM / SqMetersPerSqDegree
}
