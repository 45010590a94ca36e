package consumer

import (
	"context"
	"fmt"

	"github.com/datafocus/go-inventory-sink/cmd/setup"
	dlqpublisher "github.com/datafocus/go-inventory-sink/internal/common/dlq_publisher"
	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	"github.com/datafocus/go-inventory-sink/internal/common/messaging"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/consumer/record_stream"
)

const RecordStream = "record_stream"

// NewKafkaConsumer builds the named consumer. The returned stoppers release the
// resources the consumer owns, such as its dead letter producer.
func NewKafkaConsumer(
	ctx context.Context,
	consumerName string,
	contract *setup.Setup,
) (consumerProcess graceful.ProcessStartStopper, stoppers []graceful.ProcessStopper, err error) {
	conf := contract.Config

	switch consumerName {
	case RecordStream:
		var opts []messaging.ProducerOption
		if contract.Metrics != nil {
			opts = append(opts, messaging.WithMetricRegistry(
				contract.Metrics.SaramaRegistry(conf.App.Name+"_dlq_producer", setup.MetricsFlushInterval)))
		}

		producer, errProducer := messaging.NewKafkaSyncProducer(conf.MessageBroker.KafkaConsumer.Brokers, opts...)
		if errProducer != nil {
			err = fmt.Errorf("failed setup kafka dlq publisher: %w", errProducer)
			return
		}
		stoppers = append(stoppers, func(ctx context.Context) error { return producer.Close() })

		dlq := dlqpublisher.New(producer, conf.MessageBroker.KafkaConsumer.TopicDLQ, contract.Metrics)
		consumerProcess = record_stream.New(ctx, conf, contract.Service.Sink, dlq, contract.Metrics, contract.NewRelic)
	default:
		err = fmt.Errorf("consumer type name for %s not found", consumerName)
	}

	return
}
