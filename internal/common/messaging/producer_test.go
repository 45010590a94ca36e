package messaging

import (
	"testing"

	"github.com/Shopify/sarama"
	goMetrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestNewKafkaSyncProducer_NoBrokers(t *testing.T) {
	producer, err := NewKafkaSyncProducer(nil)
	assert.ErrorIs(t, err, ErrNoBrokers)
	assert.Nil(t, producer)
}

func TestWithMetricRegistry(t *testing.T) {
	registry := goMetrics.NewRegistry()
	cfg := sarama.NewConfig()

	WithMetricRegistry(registry)(cfg)

	assert.Same(t, registry, cfg.MetricRegistry)
}
