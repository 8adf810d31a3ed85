package server

import (
	"net/http"

	"github.com/woozymasta/licblocks/internal/metrics"
)

// Routes returns the API mux wrapped in the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/blocks", s.HandleBlocks)
	mux.HandleFunc("GET /api/blocks/{regnum}", s.HandleBlock)
	mux.HandleFunc("POST /api/parse", s.HandleParse)
	mux.HandleFunc("GET /blocks.geojson", s.HandleCollection)
	mux.Handle("GET /metrics", metrics.Handler())

	return RequestLogger(mux)
}
