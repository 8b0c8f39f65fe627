package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ExtractionsReceived prometheus.Counter
	TicketsImported     *prometheus.CounterVec
	ValidationScore     prometheus.Histogram
	ImportDuration      prometheus.Histogram
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ExtractionsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_received_total",
			Help:      "The total number of ticket extractions received",
		}),
		TicketsImported: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_imported_total",
			Help:      "The total number of ticket imports by outcome",
		}, []string{"action"}),
		ValidationScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_score",
			Help:      "Overall confidence score of validated extractions",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time taken to reconcile one ticket import",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
