package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesTotal     prometheus.Counter
	OfferRetriesTotal prometheus.Counter
	SubmissionsTotal  *prometheus.CounterVec
	SubmissionSeconds prometheus.Histogram
}

// New registers booking metrics under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_searches_total",
			Help:      "The total number of offer searches sent upstream",
		}),
		OfferRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_retries_total",
			Help:      "The total number of single-offer fetch retries",
		}),
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_submissions_total",
			Help:      "Order submissions by outcome",
		}, []string{"outcome"}),
		SubmissionSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_submission_seconds",
			Help:      "Time taken to submit orders",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
