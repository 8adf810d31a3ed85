package processor

import (
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/licblocks/internal/geo"
	"github.com/woozymasta/licblocks/internal/rfgf"
)

// FeatureCollection builds a GeoJSON collection of blocks.
func FeatureCollection(blocks []rfgf.Block) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range blocks {
		fc.Append(geo.NewBlockFeature(b.Geometry, b.License.Properties()))
	}

	return fc
}

// SaveGeoJSON writes blocks to path. Existing files are kept unless force is set.
func SaveGeoJSON(path string, blocks []rfgf.Block, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		log.Warn().Str("path", path).Msg("GeoJSON file exists, skipping (use --force)")
		return nil
	}

	return saveGeoJSON(filepath.Dir(path), path, FeatureCollection(blocks))
}

// saveGeoJSON marshals the feature collection into a temporary file next to
// path and renames it over path, so readers never see a partial collection.
func saveGeoJSON(dir, path string, fc *geojson.FeatureCollection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}

	if err := geo.WriteFeatureCollection(f, fc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}

	// We care about write errors on close
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	log.Info().
		Str("path", path).
		Int("features", len(fc.Features)).
		Msg("GeoJSON written")

	return nil
}

// LoadGeoJSON reads a block collection written by SaveGeoJSON.
func LoadGeoJSON(path string) (*geojson.FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return geo.ReadFeatureCollection(f)
}
