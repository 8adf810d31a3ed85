package server

import (
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/licblocks/internal/config"
	"github.com/woozymasta/licblocks/internal/index"
	"github.com/woozymasta/licblocks/internal/parser"
	"github.com/woozymasta/licblocks/internal/processor"
)

// maxListingSize limits POST /api/parse bodies.
const maxListingSize = 1 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	Index  *index.Index
	Parser *parser.Parser
}

// NewServerContext loads the converted block collection and indexes it.
// A missing collection leaves the index empty, parsing still works.
func NewServerContext(cfg *config.Config, p *parser.Parser) *ServerContext {
	path := cfg.Output.GeoJSON
	log.Info().Str("path", path).Msg("Initializing server context")

	fc, err := processor.LoadGeoJSON(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().
				Str("path", path).
				Msg("Block collection not found, serving empty index")
		} else {
			log.Error().
				Err(err).
				Str("path", path).
				Msg("Failed to load block collection, serving empty index")
		}
		fc = geojson.NewFeatureCollection()
	}

	idx := index.New(fc)

	log.Info().
		Int("features", len(fc.Features)).
		Int("indexed", idx.Len()).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config: cfg,
		Index:  idx,
		Parser: p,
	}
}
