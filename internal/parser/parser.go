// Package parser converts free-text license block coordinate listings into
// WGS-84 multipolygons.
//
// A listing is a copy of the registry table: rows of a row number, a latitude
// and a longitude in D°M'S"H notation, interleaved with free-text markers.
// "Объект №" and "Система координат" rows start a new polygon, a row numbered
// "1" starts a new ring of the current polygon, CRS names switch the source
// system for the following rows and "Мультиточка" rows are skipped until the
// next ring starts.
package parser

import (
	"github.com/paulmach/orb"

	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/geo"
)

// Parser holds the configuration shared by parse calls. It keeps no state
// between calls and is safe for concurrent use if its Gateway is.
type Parser struct {
	gateway   crs.Gateway
	threshold float64
}

// New returns a parser reprojecting points through gw. A threshold of zero
// selects geo.DefaultThreshold.
func New(gw crs.Gateway, threshold float64) *Parser {
	return &Parser{
		gateway:   gw,
		threshold: geo.Threshold(threshold),
	}
}

// Threshold returns the effective placeholder threshold.
func (p *Parser) Threshold() float64 {
	return p.threshold
}

// Stats counts what happened to the rows of one listing.
type Stats struct {
	Lines           int
	DataRows        int
	Points          int
	Rings           int
	DegenerateRings int
	Malformed       int
	OutOfRange      int
}

// Result is the outcome of a single parse call.
type Result struct {
	// Geometry holds polygons in input order. The first ring of every polygon
	// is its exterior, the following rings are holes.
	Geometry orb.MultiPolygon
	// CRS lists the source systems of accepted points in order of first use.
	CRS []crs.CRS
	// Issues collects recoverable per-row problems.
	Issues []error
	Stats  Stats
}

// Empty reports whether no valid ring was assembled.
func (r Result) Empty() bool {
	return len(r.Geometry) == 0
}

// CRSNames returns the names of Result.CRS.
func (r Result) CRSNames() []string {
	names := make([]string, 0, len(r.CRS))
	for _, c := range r.CRS {
		names = append(names, c.String())
	}

	return names
}

// Parse converts a listing into a multipolygon. It never fails: malformed
// and out of range rows are skipped and reported in Result.Issues.
func (p *Parser) Parse(text string) Result {
	b := newBuilder(p.gateway, p.threshold)
	for _, tokens := range Tokenize(text) {
		b.feed(Classify(tokens))
	}

	return b.finish()
}
