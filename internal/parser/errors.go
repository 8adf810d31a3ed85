package parser

import (
	"errors"
	"fmt"
)

// ErrDegenerateRing marks a ring dropped at a boundary because it held
// fewer than three points.
var ErrDegenerateRing = errors.New("degenerate ring: fewer than 3 points")

// MalformedCoordinateError indicates a token that is not a D°M'S" coordinate.
type MalformedCoordinateError struct {
	Token  string
	Reason string
}

func (e *MalformedCoordinateError) Error() string {
	return fmt.Sprintf("malformed coordinate %q: %s", e.Token, e.Reason)
}

// OutOfRangeCoordinateError indicates a decoded point below the placeholder
// threshold or outside lon ±180 / lat ±90.
type OutOfRangeCoordinateError struct {
	Lon, Lat  float64
	Threshold float64
}

func (e *OutOfRangeCoordinateError) Error() string {
	return fmt.Sprintf("coordinate out of range: lon=%f lat=%f (threshold %g, lon must be ±180, lat must be ±90)",
		e.Lon, e.Lat, e.Threshold)
}
