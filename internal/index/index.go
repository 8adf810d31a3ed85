// Package index provides bounding box queries over converted license blocks.
package index

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// minExtent pads degenerate bounds, rtreego rejects zero-length sides.
const minExtent = 1e-9

// Index is an R-tree over the features of a block collection.
type Index struct {
	tree     *rtreego.Rtree
	entries  []*entry
	byRegNum map[string]*geojson.Feature
}

type entry struct {
	seq     int
	feature *geojson.Feature
	bound   orb.Bound
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return rect(e.bound)
}

// New indexes every feature of fc that has a geometry.
func New(fc *geojson.FeatureCollection) *Index {
	idx := &Index{
		tree:     rtreego.NewTree(2, 25, 50),
		byRegNum: make(map[string]*geojson.Feature),
	}
	if fc == nil {
		return idx
	}

	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if b.IsEmpty() {
			continue
		}

		e := &entry{seq: len(idx.entries), feature: f, bound: b}
		idx.entries = append(idx.entries, e)
		idx.tree.Insert(e)

		if reg := f.Properties.MustString("gos_reg_num", ""); reg != "" {
			idx.byRegNum[reg] = f
		}
	}

	return idx
}

// Len returns the number of indexed features.
func (i *Index) Len() int {
	return len(i.entries)
}

// Search returns features whose bounds intersect b in insertion order.
func (i *Index) Search(b orb.Bound) []*geojson.Feature {
	hits := i.tree.SearchIntersect(rect(b))

	found := make([]*entry, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.(*entry))
	}
	sort.Slice(found, func(a, b int) bool { return found[a].seq < found[b].seq })

	out := make([]*geojson.Feature, 0, len(found))
	for _, e := range found {
		out = append(out, e.feature)
	}

	return out
}

// Get returns the feature with the given state registration number.
func (i *Index) Get(regNum string) (*geojson.Feature, bool) {
	f, ok := i.byRegNum[regNum]
	return f, ok
}

// All returns every indexed feature in insertion order.
func (i *Index) All() []*geojson.Feature {
	out := make([]*geojson.Feature, 0, len(i.entries))
	for _, e := range i.entries {
		out = append(out, e.feature)
	}

	return out
}

func rect(b orb.Bound) rtreego.Rect {
	point := rtreego.Point{b.Min.X(), b.Min.Y()}
	lengths := []float64{
		max(b.Max.X()-b.Min.X(), minExtent),
		max(b.Max.Y()-b.Min.Y(), minExtent),
	}

	r, _ := rtreego.NewRect(point, lengths)
	return r
}
