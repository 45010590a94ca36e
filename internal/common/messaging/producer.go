package messaging

import (
	"time"

	"github.com/Shopify/sarama"
	goMetrics "github.com/rcrowley/go-metrics"
)

type ProducerOption func(*sarama.Config)

// NewKafkaSyncProducer returns a producer that waits for the broker ack of every message.
func NewKafkaSyncProducer(brokers []string, opts ...ProducerOption) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V3_0_0_0
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner
	saramaCfg.Producer.Timeout = 2 * time.Second
	saramaCfg.Net.DialTimeout = 2 * time.Second
	saramaCfg.Net.ReadTimeout = 2 * time.Second
	saramaCfg.Net.WriteTimeout = 2 * time.Second

	for _, opt := range opts {
		opt(saramaCfg)
	}

	return sarama.NewSyncProducer(brokers, saramaCfg)
}

// WithMetricRegistry exports sarama's client metrics, see metrics.Metrics.SaramaRegistry.
func WithMetricRegistry(registry goMetrics.Registry) ProducerOption {
	return func(cfg *sarama.Config) {
		cfg.MetricRegistry = registry
	}
}
