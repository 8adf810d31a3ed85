package parser

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/geo"
)

// builder owns the transient state of one parse call.
type builder struct {
	gateway   crs.Gateway
	threshold float64

	current crs.CRS
	ring    orb.Ring
	polygon orb.Polygon
	result  Result

	// first is the untransformed seed vertex of the ring, firstT its
	// reprojection appended when the ring is closed.
	first  orb.Point
	firstT orb.Point

	multipoint      bool
	multipointFirst int
}

func newBuilder(gw crs.Gateway, threshold float64) *builder {
	return &builder{
		gateway:   gw,
		threshold: threshold,
		current:   crs.GSK2011,
	}
}

func (b *builder) feed(line Line) {
	if len(line.Tokens) == 0 {
		return
	}
	b.result.Stats.Lines++

	if line.Is(KindCRSChange) {
		b.current = line.CRS
	}
	if line.Is(KindMultipoint) {
		b.multipoint = true
		b.multipointFirst = 0
	}

	if line.Is(KindObjectBoundary) {
		b.commitRing()
		b.commitPolygon()
		b.resetRing()
	}

	if line.Is(KindRingBoundary) {
		if b.multipoint {
			// The first "1" row after the marker belongs to the points
			// themselves, the second one starts a real ring.
			b.multipointFirst++
			if b.multipointFirst > 1 {
				b.multipoint = false
				b.multipointFirst = 0
			}
		}
		b.commitRing()
		b.resetRing()
	}

	if line.Is(KindDataRow) && !b.multipoint {
		b.ingest(line)
	}
}

func (b *builder) ingest(line Line) {
	b.result.Stats.DataRows++

	if len(line.Tokens) < 3 {
		b.issue(&MalformedCoordinateError{Token: line.Tokens[0], Reason: "row has no latitude/longitude pair"})
		return
	}

	lat, err := DecodeDMS(line.Tokens[1])
	if err != nil {
		b.issue(err)
		return
	}
	lon, err := DecodeDMS(line.Tokens[2])
	if err != nil {
		b.issue(err)
		return
	}
	p := orb.Point{lon, lat}

	if line.Role.SeedsRing() && geo.AboveThreshold(p, b.threshold) && !geo.AboveThreshold(b.first, b.threshold) {
		b.first = p
		if geo.SeedValid(p, b.threshold) {
			if t, err := b.gateway.Transform(p, b.current); err == nil {
				b.firstT = t
			}
		}
	}

	if !geo.Valid(p, b.threshold) {
		b.issue(&OutOfRangeCoordinateError{Lon: lon, Lat: lat, Threshold: b.threshold})
		return
	}

	t, err := b.gateway.Transform(p, b.current)
	if err != nil {
		b.issue(err)
		return
	}

	b.ring = append(b.ring, t)
	b.result.Stats.Points++
	b.useCRS(b.current)
}

// commitRing moves the ring under construction into the current polygon,
// closing it with the reprojected seed vertex when that vertex is valid.
func (b *builder) commitRing() {
	if len(b.ring) <= 2 {
		if len(b.ring) > 0 {
			b.result.Stats.DegenerateRings++
			b.issue(ErrDegenerateRing)
		}
		return
	}

	if geo.SeedValid(b.firstT, b.threshold) {
		b.ring = append(b.ring, b.firstT)
	}
	b.polygon = append(b.polygon, b.ring)
	b.result.Stats.Rings++
}

func (b *builder) commitPolygon() {
	if len(b.polygon) > 0 {
		b.result.Geometry = append(b.result.Geometry, b.polygon)
	}
	b.polygon = nil
}

func (b *builder) resetRing() {
	b.ring = nil
	b.first = orb.Point{}
	b.firstT = orb.Point{}
}

func (b *builder) useCRS(c crs.CRS) {
	for _, seen := range b.result.CRS {
		if seen == c {
			return
		}
	}
	b.result.CRS = append(b.result.CRS, c)
}

func (b *builder) issue(err error) {
	var malformed *MalformedCoordinateError
	var outOfRange *OutOfRangeCoordinateError
	switch {
	case errors.As(err, &malformed):
		b.result.Stats.Malformed++
	case errors.As(err, &outOfRange):
		b.result.Stats.OutOfRange++
	}

	log.Trace().Err(err).Str("crs", b.current.String()).Msg("Skipped listing row")
	b.result.Issues = append(b.result.Issues, err)
}

// finish flushes the last ring and polygon.
func (b *builder) finish() Result {
	b.commitRing()
	b.commitPolygon()
	b.resetRing()

	if b.result.Geometry == nil {
		b.result.Geometry = orb.MultiPolygon{}
	}

	return b.result
}
