package parser

import (
	"strings"

	"github.com/woozymasta/licblocks/internal/crs"
)

// Markers of the registry export. Spelling follows the source locale.
const (
	markerGSK2011     = "ГСК-2011"
	markerPulkovo     = "Пулково"
	markerPulkovo42   = "42"
	markerWGS         = "WGS"
	markerMultipoint  = "Мультиточка"
	markerObject      = "Объект"
	markerNumber      = "№"
	markerSystem      = "Система"
	markerCoordinates = "координат"
)

// Kind is a set of signals a single line carries. A line may carry several
// at once, e.g. "Система координат ГСК-2011" is both an object boundary and
// a CRS change.
type Kind uint8

const (
	// KindObjectBoundary ends the current polygon ("Объект №" or "Система координат").
	KindObjectBoundary Kind = 1 << iota
	// KindRingBoundary starts a new ring within the current polygon (row "1" with coordinates).
	KindRingBoundary
	// KindCRSChange switches the current CRS for the following points.
	KindCRSChange
	// KindMultipoint starts suppression of isolated point records.
	KindMultipoint
	// KindDataRow is a row containing at least one degree sign.
	KindDataRow
)

// KindNoise is a line carrying no signal at all.
const KindNoise Kind = 0

// RowRole is the meaning of the leading row-number token. The export repeats
// numbers 1..3 at the start of every ring, and any of them may seed the
// cached first vertex used to close the ring.
type RowRole uint8

const (
	RoleNone RowRole = iota
	RoleFirst
	RoleSecond
	RoleThird
)

// SeedsRing reports whether the row may provide the ring's first vertex.
func (r RowRole) SeedsRing() bool {
	return r == RoleFirst || r == RoleSecond || r == RoleThird
}

// Line is one classified row of the listing.
type Line struct {
	Tokens []string
	Kind   Kind
	Role   RowRole
	CRS    crs.CRS // valid when Kind has KindCRSChange
}

// Is reports whether the line carries signal k.
func (l Line) Is(k Kind) bool {
	return l.Kind&k != 0
}

// Classify tags a tokenized line with every signal it carries.
func Classify(tokens []string) Line {
	line := Line{Tokens: tokens}
	if len(tokens) == 0 {
		return line
	}

	var object, number, system, coordinates, hasCoords bool
	for _, tok := range tokens {
		if c, ok := MatchCRS(tok); ok {
			line.Kind |= KindCRSChange
			line.CRS = c
		}
		if strings.Contains(tok, degreeSign) {
			hasCoords = true
		}
		if strings.Contains(tok, markerMultipoint) {
			line.Kind |= KindMultipoint
		}

		object = object || strings.Contains(tok, markerObject)
		number = number || strings.Contains(tok, markerNumber)
		system = system || strings.Contains(tok, markerSystem)
		coordinates = coordinates || strings.Contains(tok, markerCoordinates)
	}

	if (object && number) || (system && coordinates) {
		line.Kind |= KindObjectBoundary
	}

	if hasCoords {
		line.Kind |= KindDataRow
		line.Role = rowRole(tokens[0])
		if line.Role == RoleFirst {
			line.Kind |= KindRingBoundary
		}
	}

	return line
}

// MatchCRS tests a single token for a CRS marker.
func MatchCRS(token string) (crs.CRS, bool) {
	switch {
	case strings.Contains(token, markerGSK2011):
		return crs.GSK2011, true
	case strings.Contains(token, markerPulkovo) && strings.Contains(token, markerPulkovo42):
		return crs.Pulkovo1942, true
	case strings.Contains(token, markerWGS):
		return crs.WGS84, true
	default:
		return 0, false
	}
}

func rowRole(token string) RowRole {
	switch token {
	case "1":
		return RoleFirst
	case "2":
		return RoleSecond
	case "3":
		return RoleThird
	default:
		return RoleNone
	}
}
