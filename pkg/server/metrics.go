package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the analysis endpoint
type Metrics struct {
	registry         *prometheus.Registry
	analysesTotal    prometheus.Counter
	analysisFailures prometheus.Counter
	findingsTotal    prometheus.Counter
	savingsDollars   prometheus.Counter
	analysisDuration prometheus.Histogram
}

// NewMetrics registers the advisor metrics on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_analyses_total",
			Help: "Total billing CSV analyses completed.",
		}),
		analysisFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_analysis_failures_total",
			Help: "Total analyses that failed at ingestion.",
		}),
		findingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_findings_total",
			Help: "Total findings produced across all analyses.",
		}),
		savingsDollars: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_estimated_savings_dollars_total",
			Help: "Sum of estimated monthly savings across all analyses.",
		}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_analysis_duration_seconds",
			Help:    "End-to-end duration of one CSV analysis.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	m.registry.MustRegister(
		m.analysesTotal,
		m.analysisFailures,
		m.findingsTotal,
		m.savingsDollars,
		m.analysisDuration,
	)
	return m
}
