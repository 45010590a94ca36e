package record_stream

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"

	dlqpublisher "github.com/datafocus/go-inventory-sink/internal/common/dlq_publisher"
	kafkacommon "github.com/datafocus/go-inventory-sink/internal/common/kafka"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/services"
)

type RecordStreamHandler struct {
	kafkacommon.BaseHandler
	sink  services.SinkService
	nrApp *newrelic.Application
}

func NewRecordStreamHandler(
	sink services.SinkService,
	dlq dlqpublisher.Publisher,
	consumerMetrics *metrics.ConsumerMetrics,
	nrApp *newrelic.Application,
) *RecordStreamHandler {
	return &RecordStreamHandler{
		BaseHandler: kafkacommon.BaseHandler{
			ConsumerMetrics: consumerMetrics,
			DLQ:             dlq,
			LogPrefix:       logMessage,
		},
		sink:  sink,
		nrApp: nrApp,
	}
}

func (h *RecordStreamHandler) Setup(session sarama.ConsumerGroupSession) error {
	xlog.Info(context.Background(), logMessage+"[SETUP]",
		xlog.String("member_id", session.MemberID()),
		xlog.Int32("generation_id", session.GenerationID()),
	)
	return nil
}

func (h *RecordStreamHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	xlog.Info(context.Background(), logMessage+"[CLEANUP]",
		xlog.String("member_id", session.MemberID()),
	)
	return nil
}

// ConsumeClaim handles one message at a time. Every message is marked: failures are
// marked after their dead letter publish.
func (h *RecordStreamHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				xlog.Info(session.Context(), logMessage+"[CONSUME-CLAIM-CLOSED]")
				return nil
			}
			h.handleMessage(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *RecordStreamHandler) handleMessage(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	start := time.Now()

	txn := h.nrApp.StartTransaction("kafka/" + message.Topic)
	defer txn.End()

	ctx := newrelic.NewContext(session.Context(), txn)
	ctx = xlog.WithCorrelationID(ctx, correlationID(message))

	logField := h.CreateLogField(message)

	res, stream, err := h.processMessage(ctx, message)
	logField = append(logField, xlog.String("stream", stream), xlog.Duration("response-time", time.Since(start)))

	switch {
	case err != nil:
		txn.NoticeError(err)
		h.Nack(ctx, session, message, stream, err)
		h.RecordMetrics(start, message, metrics.ConsumeResultDLQ)
	case res == nil:
		xlog.Debug(ctx, logMessage+"[IGNORED]", logField...)
		h.Ack(ctx, session, message)
		h.RecordMetrics(start, message, metrics.ConsumeResultIgnored)
	default:
		logField = append(logField, xlog.String("result", res.Status()))
		if res.Outcome != nil {
			logField = append(logField, xlog.String("remote_id", res.Outcome.ID))
		}
		if res.Skipped {
			logField = append(logField, xlog.String("skip_reason", res.SkipReason))
		}
		xlog.Info(ctx, logMessage+"[PROCESSED]", logField...)
		h.Ack(ctx, session, message)
		h.RecordMetrics(start, message, metrics.ConsumeResultProcessed)
	}
}

// processMessage returns a nil result for envelopes that carry no record.
func (h *RecordStreamHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) (*models.Result, string, error) {
	envelope, err := models.ParseSingerMessage(message.Value)
	if err != nil {
		return nil, envelope.Stream, err
	}

	if !envelope.IsRecord() {
		return nil, envelope.Stream, nil
	}

	res, err := h.sink.Process(ctx, envelope.Stream, envelope.Record)
	if err != nil {
		return nil, envelope.Stream, err
	}

	return &res, envelope.Stream, nil
}

func correlationID(message *sarama.ConsumerMessage) string {
	for _, header := range message.Headers {
		if header != nil && string(header.Key) == dlqpublisher.HeaderCorrelationID && len(header.Value) > 0 {
			return string(header.Value)
		}
	}
	return uuid.New().String()
}
