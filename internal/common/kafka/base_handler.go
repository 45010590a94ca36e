package kafka

import (
	"context"
	"time"

	"github.com/Shopify/sarama"

	dlqpublisher "github.com/datafocus/go-inventory-sink/internal/common/dlq_publisher"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
)

// BaseHandler carries the ack, dead letter and metrics plumbing shared by handlers.
type BaseHandler struct {
	ConsumerMetrics *metrics.ConsumerMetrics
	DLQ             dlqpublisher.Publisher
	LogPrefix       string
}

func (b *BaseHandler) CreateLogField(msg *sarama.ConsumerMessage) []xlog.Field {
	return []xlog.Field{
		xlog.Time("timestamp", msg.Timestamp),
		xlog.String("topic", msg.Topic),
		xlog.String("key", string(msg.Key)),
		xlog.Int32("partition", msg.Partition),
		xlog.Int64("offset", msg.Offset),
	}
}

func (b *BaseHandler) Ack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	session.MarkMessage(message, "")
	xlog.Debug(ctx, b.LogPrefix+"[ACK]",
		xlog.String("topic", message.Topic),
		xlog.Int32("partition", message.Partition),
		xlog.Int64("offset", message.Offset),
	)
}

// Nack publishes the message to the dead letter topic and marks it, the claim moves on
// even when the publish fails.
func (b *BaseHandler) Nack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, stream string, causeErr error) {
	logField := b.CreateLogField(message)
	logField = append(logField, xlog.String("stream", stream), xlog.String("message-claimed", string(message.Value)), xlog.Err(causeErr))

	err := b.DLQ.Publish(ctx, models.FailedMessage{
		Payload:    message.Value,
		Stream:     stream,
		Timestamp:  message.Timestamp,
		CauseError: causeErr,
	})
	if err != nil {
		logField = append(logField, xlog.String("dlq_status", "failed"))
		xlog.Error(ctx, b.LogPrefix+"[NACK-DLQ-FAILED]", logField...)
	} else {
		logField = append(logField, xlog.String("dlq_status", "success"))
		xlog.Warn(ctx, b.LogPrefix+"[NACK]", logField...)
	}

	session.MarkMessage(message, "")
}

func (b *BaseHandler) RecordMetrics(startTime time.Time, message *sarama.ConsumerMessage, result string) {
	b.ConsumerMetrics.GenerateMetrics(startTime, message, result)
}
