package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
)

func TestBuildFQName(t *testing.T) {
	assert.Equal(t, "go_inventory_sink_record_stream", metrics.BuildFQName("go-inventory-sink", "record.stream"))
	assert.Equal(t, "a_b_c_d", metrics.FlattenName("a b=c/d"))
}

func TestSinkPrometheusMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)

	m.GetSinkPrometheus().Record(time.Now(), "BuyOrders", "success")
	m.GetSinkPrometheus().Record(time.Now(), "BuyOrders", "success")
	m.GetSinkPrometheus().Record(time.Now(), "BuyOrders", "skipped")

	count, err := testutil.GatherAndCount(reg, "inventory_sink_records_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var nilMetrics *metrics.SinkPrometheusMetrics
	assert.NotPanics(t, func() { nilMetrics.Record(time.Now(), "Bills", "failed") })
}

func TestHTTPClientAndPublisherMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)

	m.GetHTTPClientPrometheus().Record(time.Millisecond, "zoho", "GET", "/items", 200)
	m.GetPublisherPrometheus().GenerateMetrics(time.Now(), "records-dlq", errors.New("boom"))

	count, err := testutil.GatherAndCount(reg,
		"inventory_sink_api_request_duration_seconds",
		"inventory_sink_kafka_publish_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestConsumerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := metrics.NewConsumerMetrics("inventory-sink", reg)
	msg := &sarama.ConsumerMessage{Topic: "records", Timestamp: time.Now().Add(-time.Second)}
	first.GenerateMetrics(time.Now(), msg, metrics.ConsumeResultProcessed)
	first.GenerateMetrics(time.Now(), &sarama.ConsumerMessage{Topic: "records"}, metrics.ConsumeResultDLQ)

	// registering again reuses the collectors
	second := metrics.NewConsumerMetrics("inventory-sink", reg)
	second.GenerateMetrics(time.Now(), msg, metrics.ConsumeResultIgnored)

	count, err := testutil.GatherAndCount(reg, "inventory_sink_kafka_processing_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = testutil.GatherAndCount(reg, "inventory_sink_kafka_consume_lag_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var nilMetrics *metrics.ConsumerMetrics
	assert.NotPanics(t, func() { nilMetrics.GenerateMetrics(time.Now(), msg, metrics.ConsumeResultProcessed) })
}
