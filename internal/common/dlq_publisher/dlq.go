package dlqpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
)

const (
	prefixLogMessage = "[DLQ]"

	HeaderCorrelationID = "X-Correlation-Id"
)

type Publisher interface {
	Publish(ctx context.Context, message models.FailedMessage) error
}

type kafkaDlq struct {
	producer sarama.SyncProducer
	topic    string
	metrics  metrics.Metrics
}

func New(p sarama.SyncProducer, topic string, metrics metrics.Metrics) Publisher {
	return kafkaDlq{p, topic, metrics}
}

// Publish sends the failed message keyed by its stream, so failures of one stream stay ordered.
func (d kafkaDlq) Publish(ctx context.Context, message models.FailedMessage) (err error) {
	startTime := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GetPublisherPrometheus().GenerateMetrics(startTime, d.topic, err)
		}
	}()

	msg, err := d.prepareMessage(ctx, message)
	if err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "prepare dlq message failed"),
			xlog.Err(err))
		return err
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "publish dlq message failed"),
			xlog.String("topic", d.topic),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, prefixLogMessage,
		xlog.String("status", "success publish dlq message"),
		xlog.String("topic", d.topic),
		xlog.String("stream", message.Stream),
		xlog.Int32("partition", partition),
		xlog.Int64("offset", offset),
	)

	return nil
}

func (d kafkaDlq) prepareMessage(ctx context.Context, message models.FailedMessage) (*sarama.ProducerMessage, error) {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	msgByte, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	producerMsg := &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(msgByte),
	}

	if message.Stream != "" {
		producerMsg.Key = sarama.StringEncoder(message.Stream)
	}

	if id := xlog.CorrelationID(ctx); id != "" {
		producerMsg.Headers = []sarama.RecordHeader{{
			Key:   []byte(HeaderCorrelationID),
			Value: []byte(id),
		}}
	}

	return producerMsg, nil
}
