// Package metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	JobsScraped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskscan_jobs_scraped_total",
			Help: "Raw job records fetched, labeled by source.",
		},
		[]string{"source"},
	)
	ScrapeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskscan_scrape_errors_total",
			Help: "Failed source fetches, labeled by source.",
		},
		[]string{"source"},
	)
	DuplicatesRemoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deskscan_duplicates_removed_total",
			Help: "Duplicates removed, labeled by pipeline stage (per_source, cross_source, final_merge).",
		},
		[]string{"stage"},
	)
	AcceptedJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "deskscan_accepted_jobs",
			Help: "Current size of the deduplicated accepted set.",
		},
	)
	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deskscan_cycle_duration_seconds",
			Help:    "Wall time of a full scrape+merge cycle.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

func init() {
	prometheus.MustRegister(JobsScraped)
	prometheus.MustRegister(ScrapeErrors)
	prometheus.MustRegister(DuplicatesRemoved)
	prometheus.MustRegister(AcceptedJobs)
	prometheus.MustRegister(CycleDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
