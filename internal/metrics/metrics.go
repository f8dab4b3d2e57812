package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrivision_scans_classified_total",
		Help: "Total number of leaf images classified, by predicted label.",
	}, []string{"disease"})
	ScansFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrivision_scans_failed_total",
		Help: "Total number of classification attempts that failed.",
	})
	ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agrivision_classification_duration_seconds",
		Help:    "Duration of preprocessing plus inference for one image.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})
	AdapterFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrivision_adapter_failures_total",
		Help: "Total number of failed calls to external services, by service.",
	}, []string{"service"})
	FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrivision_feedback_submitted_total",
		Help: "Total number of accepted feedback submissions, by user type.",
	}, []string{"user_type"})
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrivision_cache_hits_total",
		Help: "Total number of cache hits, by cache name.",
	}, []string{"cache"})
)
