package metrics

import (
	"errors"
	"time"

	"github.com/Shopify/sarama"
	"github.com/prometheus/client_golang/prometheus"
)

// Consumer outcomes used as the "result" label.
const (
	ConsumeResultProcessed = "processed"
	ConsumeResultIgnored   = "ignored"
	ConsumeResultDLQ       = "dlq"
)

// ConsumerMetrics observes every message a consumer group claims.
type ConsumerMetrics struct {
	consumerGroup      string
	lagHist            *prometheus.HistogramVec
	processingTimeHist *prometheus.HistogramVec
}

func NewConsumerMetrics(consumerGroup string, reg prometheus.Registerer) *ConsumerMetrics {
	lagHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_sink_kafka_consume_lag_seconds",
		Help:    "Time between a message being produced and its processing finishing.",
		Buckets: durationBuckets,
	}, []string{"topic", "consumer_group"})

	processingTimeHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_sink_kafka_processing_duration_seconds",
		Help:    "Processing time of one claimed message.",
		Buckets: durationBuckets,
	}, []string{"topic", "consumer_group", "result"})

	lagHist = registerOrExisting(reg, lagHist)
	processingTimeHist = registerOrExisting(reg, processingTimeHist)

	return &ConsumerMetrics{
		consumerGroup:      consumerGroup,
		lagHist:            lagHist,
		processingTimeHist: processingTimeHist,
	}
}

func (m *ConsumerMetrics) GenerateMetrics(startTime time.Time, message *sarama.ConsumerMessage, result string) {
	if m == nil || message == nil {
		return
	}

	endTime := time.Now()
	if !message.Timestamp.IsZero() {
		m.lagHist.WithLabelValues(message.Topic, m.consumerGroup).
			Observe(endTime.Sub(message.Timestamp).Seconds())
	}
	m.processingTimeHist.WithLabelValues(message.Topic, m.consumerGroup, result).
		Observe(endTime.Sub(startTime).Seconds())
}

// registerOrExisting returns the collector already registered under the same
// descriptor, so restarting a consumer does not panic.
func registerOrExisting(reg prometheus.Registerer, hist *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(hist); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return hist
}
