package index

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func square(minX, minY, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{minX, minY}, {minX + size, minY}, {minX + size, minY + size}, {minX, minY + size}, {minX, minY},
	}}}
}

func collection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range []struct {
		reg  string
		x, y float64
	}{
		{"A", 37, 55},
		{"B", 70, 60},
		{"C", 37.5, 55.5},
	} {
		f := geojson.NewFeature(square(b.x, b.y, 1))
		f.Properties["gos_reg_num"] = b.reg
		fc.Append(f)
	}

	// features without geometry are ignored
	fc.Append(&geojson.Feature{Type: "Feature", Properties: geojson.Properties{"gos_reg_num": "D"}})
	return fc
}

func TestSearch(t *testing.T) {
	idx := New(collection())
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}

	tests := []struct {
		name  string
		bound orb.Bound
		want  []string
	}{
		{"moscow", orb.Bound{Min: orb.Point{36, 54}, Max: orb.Point{39, 57}}, []string{"A", "C"}},
		{"west siberia", orb.Bound{Min: orb.Point{69, 59}, Max: orb.Point{72, 62}}, []string{"B"}},
		{"point inside", orb.Bound{Min: orb.Point{70.5, 60.5}, Max: orb.Point{70.5, 60.5}}, []string{"B"}},
		{"nowhere", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, nil},
		{"everything", orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(tt.bound)
			if len(got) != len(tt.want) {
				t.Fatalf("Search() returned %d features, want %d", len(got), len(tt.want))
			}
			for i, f := range got {
				if reg := f.Properties.MustString("gos_reg_num", ""); reg != tt.want[i] {
					t.Errorf("feature %d = %s, want %s", i, reg, tt.want[i])
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	idx := New(collection())

	if f, ok := idx.Get("B"); !ok || f.Geometry.Bound().Min != (orb.Point{70, 60}) {
		t.Errorf("Get(B) = %v, %v", f, ok)
	}
	if _, ok := idx.Get("D"); ok {
		t.Error("Get(D) found a feature without geometry")
	}
	if len(idx.All()) != 3 {
		t.Errorf("All() returned %d features", len(idx.All()))
	}
}

func TestNewNil(t *testing.T) {
	idx := New(nil)
	if idx.Len() != 0 || len(idx.Search(orb.Bound{Max: orb.Point{1, 1}})) != 0 {
		t.Error("empty index returned results")
	}
}
