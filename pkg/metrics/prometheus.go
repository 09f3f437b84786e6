package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	OffersFetched      prometheus.Counter
	OffersStored       prometheus.Counter
	RecordsTransformed prometheus.Counter
	RecordsWritten     *prometheus.CounterVec
	SinkWriteDuration  *prometheus.HistogramVec
	SinkRecordsPerSec  *prometheus.GaugeVec
	SinkBytesPerSec    *prometheus.GaugeVec
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OffersFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_fetched_total",
			Help:      "The total number of flight offers fetched upstream",
		}),
		OffersStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_stored_total",
			Help:      "The total number of flight offers parked in the inbox",
		}),
		RecordsTransformed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_transformed_total",
			Help:      "The total number of offers transformed into ticket records",
		}),
		RecordsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "The total number of ticket records written per sink",
		}, []string{"sink"}),
		SinkWriteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sink_write_duration_seconds",
			Help:      "Time taken to replicate a batch into one sink",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sink"}),
		SinkRecordsPerSec: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sink_records_per_second",
			Help:      "Write throughput of the last run per sink",
		}, []string{"sink"}),
		SinkBytesPerSec: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sink_bytes_per_second",
			Help:      "Estimated data rate of the last run per sink",
		}, []string{"sink"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
