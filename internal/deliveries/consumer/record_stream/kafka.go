package record_stream

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"

	dlqpublisher "github.com/datafocus/go-inventory-sink/internal/common/dlq_publisher"
	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	kafkacommon "github.com/datafocus/go-inventory-sink/internal/common/kafka"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/services"
)

const logMessage = "[KAFKA-CONSUMER] [RECORD-STREAM] "

type Consumer struct {
	*kafkacommon.BaseConsumer
}

var _ graceful.ProcessStartStopper = (*Consumer)(nil)

func New(
	ctx context.Context,
	cfg config.Config,
	sink services.SinkService,
	dlq dlqpublisher.Publisher,
	mtc metrics.Metrics,
	nrApp *newrelic.Application,
) *Consumer {
	consumerCfg := cfg.MessageBroker.KafkaConsumer

	var consumerMetrics *metrics.ConsumerMetrics
	if mtc != nil {
		consumerMetrics = metrics.NewConsumerMetrics(consumerCfg.ConsumerGroup, mtc.PrometheusRegisterer())
	}

	handler := NewRecordStreamHandler(sink, dlq, consumerMetrics, nrApp)

	c := &Consumer{
		BaseConsumer: kafkacommon.NewBaseConsumer(kafkacommon.BaseConsumerConfig{
			Ctx:       ctx,
			Consumer:  consumerCfg,
			Metrics:   mtc,
			Handler:   handler,
			LogPrefix: logMessage,
		}),
	}

	xlog.Info(ctx, logMessage, xlog.String("status", "success init kafka consumer"))

	return c
}

func (c *Consumer) Start() graceful.ProcessStarter {
	return c.BaseConsumer.Start()
}

func (c *Consumer) Stop() graceful.ProcessStopper {
	return c.BaseConsumer.Stop()
}
