package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type SinkPrometheusMetrics struct {
	recordsTotal       *prometheus.CounterVec
	processingTimeHist *prometheus.HistogramVec
}

func newSinkPrometheusMetrics(reg prometheus.Registerer) *SinkPrometheusMetrics {
	mtc := &SinkPrometheusMetrics{
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_sink_records_total",
				Help: "Number of processed records by stream and status",
			},
			[]string{"stream", "status"},
		),
		processingTimeHist: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_sink_processing_duration_seconds",
				Help:    "Duration of record processing in seconds, remote calls included.",
				Buckets: durationBuckets,
			},
			[]string{"stream"},
		),
	}

	reg.MustRegister(mtc.recordsTotal, mtc.processingTimeHist)

	return mtc
}

// Record counts one processed record, status is "success", "unsuccessful", "skipped" or "failed".
func (m *SinkPrometheusMetrics) Record(startTime time.Time, stream, status string) {
	if m == nil {
		return
	}

	m.recordsTotal.WithLabelValues(stream, status).Inc()
	m.processingTimeHist.WithLabelValues(stream).Observe(time.Since(startTime).Seconds())
}
