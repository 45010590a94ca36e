package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPClientPrometheusMetrics times calls to the inventory API.
type HTTPClientPrometheusMetrics struct {
	requestDurationHist *prometheus.HistogramVec
}

func newHTTPClientPrometheusMetrics(reg prometheus.Registerer) *HTTPClientPrometheusMetrics {
	requestDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_sink_api_request_duration_seconds",
			Help:    "Duration of inventory API requests in seconds.",
			Buckets: durationBuckets,
		},
		[]string{"service", "method", "endpoint", "response_code"},
	)

	reg.MustRegister(requestDurationHist)

	return &HTTPClientPrometheusMetrics{requestDurationHist}
}

// Record observes one request. statusCode is 0 when no response was received.
func (m *HTTPClientPrometheusMetrics) Record(duration time.Duration, service, method, endpoint string, statusCode int) {
	if m == nil {
		return
	}

	m.requestDurationHist.WithLabelValues(service, method, endpoint, strconv.Itoa(statusCode)).
		Observe(duration.Seconds())
}
