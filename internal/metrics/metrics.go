// Package metrics exposes Prometheus counters of the HTTP API and the
// listing parser.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/woozymasta/licblocks/internal/parser"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "licblocks_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "licblocks_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ListingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "licblocks_listings_parsed_total",
		Help: "Total number of coordinate listings parsed",
	})
	EmptyListingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "licblocks_listings_empty_total",
		Help: "Total number of listings without a usable polygon",
	})
	PolygonsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "licblocks_polygons_total",
		Help: "Total number of polygons assembled",
	})
	SkippedRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "licblocks_skipped_rows_total",
		Help: "Listing rows and rings dropped by the parser",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ListingsTotal)
	prometheus.MustRegister(EmptyListingsTotal)
	prometheus.MustRegister(PolygonsTotal)
	prometheus.MustRegister(SkippedRowsTotal)
}

// ObserveParse records the outcome of one parse call.
func ObserveParse(res parser.Result) {
	ListingsTotal.Inc()
	if res.Empty() {
		EmptyListingsTotal.Inc()
	}
	PolygonsTotal.Add(float64(len(res.Geometry)))

	s := res.Stats
	SkippedRowsTotal.WithLabelValues("malformed").Add(float64(s.Malformed))
	SkippedRowsTotal.WithLabelValues("out_of_range").Add(float64(s.OutOfRange))
	SkippedRowsTotal.WithLabelValues("degenerate_ring").Add(float64(s.DegenerateRings))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler { return promhttp.Handler() }
