package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherPrometheusMetrics times DLQ publishes.
type PublisherPrometheusMetrics struct {
	publishDurationHist *prometheus.HistogramVec
}

func newPublisherPrometheusMetrics(reg prometheus.Registerer) *PublisherPrometheusMetrics {
	publishDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_sink_kafka_publish_duration_seconds",
			Help:    "Duration of kafka publishes in seconds.",
			Buckets: durationBuckets,
		},
		[]string{"topic", "success"},
	)

	reg.MustRegister(publishDurationHist)

	return &PublisherPrometheusMetrics{publishDurationHist}
}

func (m *PublisherPrometheusMetrics) GenerateMetrics(startTime time.Time, topic string, publishErr error) {
	if m == nil {
		return
	}

	m.publishDurationHist.WithLabelValues(topic, strconv.FormatBool(publishErr == nil)).
		Observe(time.Since(startTime).Seconds())
}
