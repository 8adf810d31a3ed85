// Package geo handles geographic data structures and coordinate checks.
package geo

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NewBlockFeature wraps a license block geometry and its attributes into a
// GeoJSON feature.
func NewBlockFeature(mp orb.MultiPolygon, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(mp)
	for k, v := range props {
		f.Properties[k] = v
	}

	return f
}

// WriteFeatureCollection encodes fc to w.
func WriteFeatureCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	return json.NewEncoder(w).Encode(fc)
}

// ReadFeatureCollection decodes a GeoJSON feature collection from r.
func ReadFeatureCollection(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return geojson.UnmarshalFeatureCollection(data)
}
