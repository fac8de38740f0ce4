package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline and the venue filter service.
type Metrics struct {
	// Feed metrics.
	FeedFetchDuration *prometheus.HistogramVec // labels: feed={venues,events,event_dates}
	VenuesParsed      prometheus.Counter
	EventsParsed      prometheus.Counter
	RecordsDropped    *prometheus.CounterVec // labels: reason={missing_coordinates,no_dates,unknown_venue}

	// Ingestion metrics.
	IngestRuns     *prometheus.CounterVec // labels: outcome={loaded,skipped,no_venues,error}
	IngestDuration prometheus.Histogram
	VenuesLoaded   prometheus.Gauge
	EventsLoaded   prometheus.Gauge

	// Query metrics.
	FilterQueries prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FeedFetchDuration,
		m.VenuesParsed,
		m.EventsParsed,
		m.RecordsDropped,
		m.IngestRuns,
		m.IngestDuration,
		m.VenuesLoaded,
		m.EventsLoaded,
		m.FilterQueries,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venue_etl",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of one feed fetch-and-decode, by feed.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feed"}),
		VenuesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_etl",
			Name:      "venues_parsed_total",
			Help:      "Total venue records normalized from the venues feed.",
		}),
		EventsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_etl",
			Name:      "events_parsed_total",
			Help:      "Total event records normalized from the events feed.",
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_etl",
			Name:      "records_dropped_total",
			Help:      "Feed records discarded during normalization, by reason.",
		}, []string{"reason"}),
		IngestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_etl",
			Name:      "ingest_runs_total",
			Help:      "Ingestion run outcomes.",
		}, []string{"outcome"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_etl",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete fetch-parse-rank-load run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		VenuesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_etl",
			Name:      "venues_loaded",
			Help:      "Venues persisted by the last completed load.",
		}),
		EventsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_etl",
			Name:      "events_loaded",
			Help:      "Events persisted by the last completed load.",
		}),
		FilterQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_etl",
			Name:      "filter_queries_total",
			Help:      "Venue filter queries served.",
		}),
	}
}
