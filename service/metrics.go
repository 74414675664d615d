package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// ScanMetrics counts scans by text source and outcome.
type ScanMetrics struct {
	scans    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewScanMetrics registers the scan collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration; a nil reg registers nothing.
func NewScanMetrics(reg prometheus.Registerer) *ScanMetrics {
	return &ScanMetrics{
		scans: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "currency_scanner_scans_total",
			Help: "Number of scan and extract requests by text source and outcome.",
		}, []string{"source", "outcome"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "currency_scanner_scan_duration_seconds",
			Help:    "Time spent recognizing and parsing one request.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}
}

func (m *ScanMetrics) observe(source, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(source, outcome).Inc()
	m.duration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}
