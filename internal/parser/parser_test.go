package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/geo"
)

// shiftGateway moves GSK-2011 and Pulkovo-1942 points by fixed offsets and
// records the source system of every call.
type shiftGateway struct {
	calls []crs.CRS
}

func (g *shiftGateway) Transform(p orb.Point, src crs.CRS) (orb.Point, error) {
	g.calls = append(g.calls, src)
	switch src {
	case crs.GSK2011:
		return orb.Point{p.X() + 0.001, p.Y() + 0.002}, nil
	case crs.Pulkovo1942:
		return orb.Point{p.X() - 0.001, p.Y() - 0.002}, nil
	default:
		return p, nil
	}
}

func listing(rows ...string) string {
	return strings.Join(rows, "\n")
}

const (
	rowA = `1 55°00'00"N 37°00'00"E`
	rowB = `2 55°00'00"N 38°00'00"E`
	rowC = `3 56°00'00"N 38°00'00"E`
	rowD = `4 56°00'00"N 37°00'00"E`
)

func pointsEqual(a, b orb.Point) bool {
	return math.Abs(a.X()-b.X()) < 1e-9 && math.Abs(a.Y()-b.Y()) < 1e-9
}

func TestParseSquare(t *testing.T) {
	p := New(crs.Identity{}, 0)
	res := p.Parse(listing("Система координат: WGS-84", rowA, rowB, rowC, rowD))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	if len(res.Geometry[0]) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(res.Geometry[0]))
	}

	ring := res.Geometry[0][0]
	if len(ring) != 5 {
		t.Fatalf("expected 5 points, got %d: %v", len(ring), ring)
	}

	want := []orb.Point{{37, 55}, {38, 55}, {38, 56}, {37, 56}, {37, 55}}
	for i, pt := range want {
		if !pointsEqual(ring[i], pt) {
			t.Errorf("point %d = %v, want %v", i, ring[i], pt)
		}
	}

	if len(res.CRS) != 1 || res.CRS[0] != crs.WGS84 {
		t.Errorf("CRS = %v, want [WGS-84]", res.CRS)
	}
	if res.Stats.Points != 4 || res.Stats.Rings != 1 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	if len(res.Issues) != 0 {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}

func TestParseMultipleObjects(t *testing.T) {
	p := New(crs.Identity{}, 0)
	res := p.Parse(listing(
		"Объект №1",
		rowA, rowB, rowC, rowD,
		"Объект №2",
		`1 60°00'00"N 70°00'00"E`,
		`2 60°00'00"N 71°00'00"E`,
		`3 61°00'00"N 71°00'00"E`,
		`4 61°00'00"N 70°00'00"E`,
	))

	if len(res.Geometry) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(res.Geometry))
	}
	for i, poly := range res.Geometry {
		if len(poly) != 1 {
			t.Errorf("polygon %d: expected 1 ring, got %d", i, len(poly))
		}
		if !geo.Closed(poly[0], 1e-9) {
			t.Errorf("polygon %d: ring is not closed: %v", i, poly[0])
		}
	}
	if !pointsEqual(res.Geometry[1][0][0], orb.Point{70, 60}) {
		t.Errorf("second polygon starts at %v", res.Geometry[1][0][0])
	}
}

func TestParseHoles(t *testing.T) {
	p := New(crs.Identity{}, 0)
	res := p.Parse(listing(
		"Объект №1",
		rowA, rowB, rowC, rowD,
		`1 55°20'00"N 37°20'00"E`,
		`2 55°20'00"N 37°40'00"E`,
		`3 55°40'00"N 37°40'00"E`,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	poly := res.Geometry[0]
	if len(poly) != 2 {
		t.Fatalf("expected exterior and one hole, got %d rings", len(poly))
	}
	if len(poly[0]) != 5 || len(poly[1]) != 4 {
		t.Errorf("ring sizes = %d, %d; want 5, 4", len(poly[0]), len(poly[1]))
	}
	if !geo.Closed(poly[1], 1e-9) {
		t.Errorf("hole is not closed: %v", poly[1])
	}
}

func TestParseClosesWithTransformedSeed(t *testing.T) {
	gw := &shiftGateway{}
	p := New(gw, 0)
	res := p.Parse(listing(rowA, rowB, rowC, rowD))

	if len(res.Geometry) != 1 || len(res.Geometry[0]) != 1 {
		t.Fatalf("unexpected geometry: %v", res.Geometry)
	}
	ring := res.Geometry[0][0]
	if len(ring) != 5 {
		t.Fatalf("expected 5 points, got %d", len(ring))
	}
	if !pointsEqual(ring[0], ring[4]) {
		t.Errorf("first %v != last %v", ring[0], ring[4])
	}
	// default system is GSK-2011
	if !pointsEqual(ring[0], orb.Point{37.001, 55.002}) {
		t.Errorf("first point not transformed: %v", ring[0])
	}
	for i, c := range gw.calls {
		if c != crs.GSK2011 {
			t.Errorf("call %d used %v", i, c)
		}
	}
}

func TestParseRingStaysOpen(t *testing.T) {
	p := New(crs.Identity{}, 0)
	// row 1 seeds the ring but its longitude is out of range, so the seed
	// never gets a transformed copy and the ring is not closed
	res := p.Parse(listing(
		`1 55°00'00"N 200°00'00"E`,
		rowB, rowC, rowD,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	ring := res.Geometry[0][0]
	if len(ring) != 3 {
		t.Fatalf("expected 3 points, got %d: %v", len(ring), ring)
	}
	if geo.Closed(ring, 1e-9) {
		t.Errorf("ring unexpectedly closed: %v", ring)
	}
	if res.Stats.OutOfRange != 1 {
		t.Errorf("OutOfRange = %d, want 1", res.Stats.OutOfRange)
	}
}

func TestParseWesternRingStaysOpen(t *testing.T) {
	p := New(crs.Identity{}, 0)
	res := p.Parse(listing(
		`1 55°00'00"N 37°00'00"W`,
		`2 55°00'00"N 38°00'00"W`,
		`3 56°00'00"N 38°00'00"W`,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	ring := res.Geometry[0][0]
	if len(ring) != 3 {
		t.Fatalf("expected 3 points, got %d: %v", len(ring), ring)
	}
	if !pointsEqual(ring[0], orb.Point{-37, 55}) {
		t.Errorf("first point = %v, want (-37, 55)", ring[0])
	}
	if geo.Closed(ring, 1e-9) {
		t.Errorf("ring unexpectedly closed: %v", ring)
	}
	if len(res.Issues) != 0 {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}

func TestParseSeedFromSecondRow(t *testing.T) {
	p := New(crs.Identity{}, 0)
	res := p.Parse(listing(
		`1 0°00'00"N 0°00'00"E`,
		rowB, rowC, rowD,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	ring := res.Geometry[0][0]
	if len(ring) != 4 {
		t.Fatalf("expected 4 points, got %d: %v", len(ring), ring)
	}
	if !pointsEqual(ring[3], orb.Point{38, 55}) {
		t.Errorf("ring closed with %v, want row 2 vertex", ring[3])
	}
}

func TestParseDropsDegenerateRings(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		polygons int
		rings    int
	}{
		{
			name:     "ring boundary",
			text:     listing("Объект №1", rowA, rowB, rowC, rowD, rowA, rowB),
			polygons: 1,
			rings:    1,
		},
		{
			name:     "object boundary",
			text:     listing("Объект №1", rowA, rowB, "Объект №2", rowA, rowB, rowC),
			polygons: 1,
			rings:    1,
		},
		{
			name:     "only short ring",
			text:     listing(rowA, rowB),
			polygons: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(crs.Identity{}, 0).Parse(tt.text)
			if len(res.Geometry) != tt.polygons {
				t.Fatalf("expected %d polygons, got %d", tt.polygons, len(res.Geometry))
			}
			if tt.polygons > 0 && len(res.Geometry[0]) != tt.rings {
				t.Errorf("expected %d rings, got %d", tt.rings, len(res.Geometry[0]))
			}
			if res.Stats.DegenerateRings != 1 {
				t.Errorf("DegenerateRings = %d, want 1", res.Stats.DegenerateRings)
			}

			found := false
			for _, err := range res.Issues {
				if errors.Is(err, ErrDegenerateRing) {
					found = true
				}
			}
			if !found {
				t.Errorf("ErrDegenerateRing not reported: %v", res.Issues)
			}
		})
	}
}

func TestParseThreshold(t *testing.T) {
	// 0°0'0.18" is 0.00005 degrees
	res := New(crs.Identity{}, 0.0001).Parse(listing(
		rowA,
		`2 55°00'00"N 0°00'0.18"E`,
		rowB, rowC, rowD,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	for _, pt := range res.Geometry[0][0] {
		if math.Abs(pt.X()) <= 0.0001 {
			t.Errorf("placeholder point accepted: %v", pt)
		}
	}
	if len(res.Geometry[0][0]) != 5 {
		t.Errorf("expected 5 points, got %d", len(res.Geometry[0][0]))
	}
}

func TestParseDefaultThreshold(t *testing.T) {
	if got := New(crs.Identity{}, 0).Threshold(); got != geo.DefaultThreshold {
		t.Errorf("Threshold() = %g, want %g", got, geo.DefaultThreshold)
	}
	if got := New(crs.Identity{}, 0.1).Threshold(); got != 0.1 {
		t.Errorf("Threshold() = %g, want 0.1", got)
	}
}

func TestParseMalformedRowsAreSkipped(t *testing.T) {
	res := New(crs.Identity{}, 0).Parse(listing(
		rowA,
		`2 55°00'00"N 38°00'00E`,
		`2 55°00'00"N`,
		rowB, rowC, rowD,
	))

	if len(res.Geometry) != 1 || len(res.Geometry[0][0]) != 5 {
		t.Fatalf("unexpected geometry: %v", res.Geometry)
	}
	if res.Stats.Malformed != 2 {
		t.Errorf("Malformed = %d, want 2", res.Stats.Malformed)
	}
}

func TestParseCRSChangesMidDocument(t *testing.T) {
	gw := &shiftGateway{}
	res := New(gw, 0).Parse(listing(
		"Объект №1 (ГСК-2011)",
		rowA, rowB, rowC, rowD,
		"Объект №2 Пулково-42",
		rowA, rowB, rowC, rowD,
	))

	if len(res.Geometry) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(res.Geometry))
	}
	if !pointsEqual(res.Geometry[0][0][0], orb.Point{37.001, 55.002}) {
		t.Errorf("first polygon not in GSK-2011: %v", res.Geometry[0][0][0])
	}
	if !pointsEqual(res.Geometry[1][0][0], orb.Point{36.999, 54.998}) {
		t.Errorf("second polygon not in Pulkovo-1942: %v", res.Geometry[1][0][0])
	}
	if names := strings.Join(res.CRSNames(), ","); names != "GSK-2011,Pulkovo-1942" {
		t.Errorf("CRSNames() = %s", names)
	}
}

func TestParseMultipoint(t *testing.T) {
	res := New(crs.Identity{}, 0).Parse(listing(
		"Объект №1",
		rowA, rowB, rowC, rowD,
		"Мультиточка",
		`1 50°00'00"N 30°00'00"E`,
		`2 50°10'00"N 30°10'00"E`,
		`1 55°20'00"N 37°20'00"E`,
		`2 55°20'00"N 37°40'00"E`,
		`3 55°40'00"N 37°40'00"E`,
	))

	if len(res.Geometry) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(res.Geometry))
	}
	poly := res.Geometry[0]
	if len(poly) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(poly))
	}
	for _, ring := range poly {
		for _, pt := range ring {
			if pt.X() < 31 {
				t.Errorf("multipoint vertex leaked into ring: %v", pt)
			}
		}
	}
	if !pointsEqual(poly[1][0], orb.Point{37 + 20.0/60, 55 + 20.0/60}) {
		t.Errorf("second ring starts at %v", poly[1][0])
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "Объект №1\nнет координат", "\n\n"} {
		res := New(crs.Identity{}, 0).Parse(text)
		if !res.Empty() {
			t.Errorf("Parse(%q) expected empty result, got %v", text, res.Geometry)
		}
		if res.Geometry == nil {
			t.Errorf("Parse(%q) returned nil geometry", text)
		}
	}
}
