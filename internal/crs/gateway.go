package crs

import (
	"fmt"
	"sync"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

// Gateway reprojects a point given in src into WGS-84 decimal degrees.
// Implementations must be safe to call repeatedly without side effects.
type Gateway interface {
	Transform(p orb.Point, src CRS) (orb.Point, error)
}

// Identity is a Gateway that returns points unchanged.
type Identity struct{}

// Transform implements Gateway.
func (Identity) Transform(p orb.Point, _ CRS) (orb.Point, error) {
	return p, nil
}

// ProjGateway reprojects points with PROJ.4 pipelines. Transformers are
// built lazily once per source system and reused. proj transformers write
// ellipsoid parameters back into their spatial references, so every call
// runs under mu.
type ProjGateway struct {
	mu    sync.Mutex
	dst   *proj.SR
	cache map[CRS]proj.Transformer
}

// NewProjGateway parses the WGS-84 target definition and returns a gateway.
func NewProjGateway() (*ProjGateway, error) {
	dst, err := proj.Parse(wgs84Def)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", WGS84, err)
	}

	return &ProjGateway{
		dst:   dst,
		cache: make(map[CRS]proj.Transformer, 2),
	}, nil
}

// Transform implements Gateway. WGS-84 input is returned as is.
func (g *ProjGateway) Transform(p orb.Point, src CRS) (orb.Point, error) {
	if src == WGS84 {
		return p, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	tr, err := g.transformer(src)
	if err != nil {
		return orb.Point{}, err
	}

	x, y, err := tr(p.X(), p.Y())
	if err != nil {
		return orb.Point{}, fmt.Errorf("transform %s point (%f, %f): %w", src, p.X(), p.Y(), err)
	}

	return orb.Point{x, y}, nil
}

// transformer returns the cached transformer for src. Callers hold mu.
func (g *ProjGateway) transformer(src CRS) (proj.Transformer, error) {
	if tr, ok := g.cache[src]; ok {
		return tr, nil
	}

	sr, err := proj.Parse(src.Proj4())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}

	tr, err := sr.NewTransform(g.dst)
	if err != nil {
		return nil, fmt.Errorf("build %s -> %s transform: %w", src, WGS84, err)
	}

	g.cache[src] = tr
	return tr, nil
}
