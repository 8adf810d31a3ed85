package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultThreshold is used when a zero threshold is configured.
const DefaultThreshold = 0.0001

// Threshold returns t, or DefaultThreshold when t is not positive.
func Threshold(t float64) float64 {
	if t <= 0 {
		return DefaultThreshold
	}

	return t
}

// AboveThreshold reports whether both axes exceed the placeholder threshold
// in magnitude. Values at or below it are sentinels of the export.
func AboveThreshold(p orb.Point, threshold float64) bool {
	return math.Abs(p.X()) > threshold && math.Abs(p.Y()) > threshold
}

// InRange reports whether lon is within ±180 and lat within ±90.
func InRange(p orb.Point) bool {
	return math.Abs(p.X()) <= 180 && math.Abs(p.Y()) <= 90
}

// Valid combines AboveThreshold and InRange.
func Valid(p orb.Point, threshold float64) bool {
	return AboveThreshold(p, threshold) && InRange(p)
}

// SeedValid is the signed check applied to the vertex that closes a ring:
// threshold < lon <= 180 and threshold < lat <= 90. Ring seeds in the western
// or southern hemisphere never close their ring.
func SeedValid(p orb.Point, threshold float64) bool {
	return p.X() > threshold && p.X() <= 180 && p.Y() > threshold && p.Y() <= 90
}

// Closed reports whether the first and last vertices of r coincide within eps.
func Closed(r orb.Ring, eps float64) bool {
	if len(r) < 2 {
		return false
	}

	first, last := r[0], r[len(r)-1]
	return math.Abs(first.X()-last.X()) <= eps && math.Abs(first.Y()-last.Y()) <= eps
}
