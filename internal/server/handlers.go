// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/licblocks/internal/metrics"
)

const etagCap = 64

// HandleBlocks serves blocks intersecting the optional
// bbox=minLon,minLat,maxLon,maxLat query parameter.
func (s *ServerContext) HandleBlocks(w http.ResponseWriter, r *http.Request) {
	features := s.Index.All()

	if raw := r.URL.Query().Get("bbox"); raw != "" {
		b, err := parseBBox(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		features = s.Index.Search(b)
	}

	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, features...)

	writeGeoJSON(w, http.StatusOK, fc)
}

// HandleBlock serves a single block by its state registration number.
func (s *ServerContext) HandleBlock(w http.ResponseWriter, r *http.Request) {
	f, ok := s.Index.Get(r.PathValue("regnum"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeGeoJSON(w, http.StatusOK, f)
}

// HandleParse converts a coordinate listing posted as plain text into a
// GeoJSON feature. Listings without a usable polygon yield 422.
func (s *ServerContext) HandleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxListingSize))
	if err != nil {
		http.Error(w, "listing too large", http.StatusRequestEntityTooLarge)
		return
	}

	res := s.Parser.Parse(string(body))
	metrics.ObserveParse(res)

	issues := make([]string, 0, len(res.Issues))
	for _, e := range res.Issues {
		issues = append(issues, e.Error())
	}

	f := geojson.NewFeature(res.Geometry)
	f.Properties["source_gcs"] = strings.Join(res.CRSNames(), ", ")
	f.Properties["polygons"] = len(res.Geometry)
	f.Properties["rings"] = res.Stats.Rings
	f.Properties["points"] = res.Stats.Points
	f.Properties["issues"] = issues

	status := http.StatusOK
	if res.Empty() {
		status = http.StatusUnprocessableEntity
	}

	writeGeoJSON(w, status, f)
}

// HandleCollection serves the converted GeoJSON file as is.
func (s *ServerContext) HandleCollection(w http.ResponseWriter, r *http.Request) {
	if !s.serveFile(w, r, s.Config.Output.GeoJSON, "application/geo+json") {
		http.NotFound(w, r)
	}
}

func writeGeoJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func parseBBox(raw string) (orb.Bound, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox must be minLon,minLat,maxLon,maxLat")
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox value %q: %w", p, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return orb.Bound{}, fmt.Errorf("bbox value %q is not finite", p)
		}
		v[i] = f
	}

	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, fmt.Errorf("bbox min exceeds max")
	}

	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
