package record_stream

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/datafocus/go-inventory-sink/internal/common"
	mockDlq "github.com/datafocus/go-inventory-sink/internal/common/dlq_publisher/mock"
	mockKafka "github.com/datafocus/go-inventory-sink/internal/common/kafka/mock"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	mockServices "github.com/datafocus/go-inventory-sink/internal/services/mock"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

type recordStreamHandlerHelper struct {
	mockCtrl *gomock.Controller
	sink     *mockServices.MockSinkService
	dlq      *mockDlq.MockPublisher
	session  *mockKafka.MockConsumerGroupSession
	claim    *mockKafka.MockConsumerGroupClaim
	handler  *RecordStreamHandler
}

func newRecordStreamHandlerHelper(t *testing.T) recordStreamHandlerHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)
	sink := mockServices.NewMockSinkService(mockCtrl)
	dlq := mockDlq.NewMockPublisher(mockCtrl)

	return recordStreamHandlerHelper{
		mockCtrl: mockCtrl,
		sink:     sink,
		dlq:      dlq,
		session:  mockKafka.NewMockConsumerGroupSession(mockCtrl),
		claim:    mockKafka.NewMockConsumerGroupClaim(mockCtrl),
		handler: NewRecordStreamHandler(sink, dlq,
			metrics.NewConsumerMetrics("inventory-sink", prometheus.NewRegistry()), nil),
	}
}

// consume feeds the messages to ConsumeClaim and returns once the claim is drained.
func (th recordStreamHandlerHelper) consume(t *testing.T, messages ...*sarama.ConsumerMessage) {
	t.Helper()

	ch := make(chan *sarama.ConsumerMessage, len(messages))
	for _, m := range messages {
		ch <- m
	}
	close(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	th.claim.EXPECT().Messages().Return((<-chan *sarama.ConsumerMessage)(ch)).AnyTimes()
	th.session.EXPECT().Context().Return(ctx).AnyTimes()

	assert.NoError(t, th.handler.ConsumeClaim(th.session, th.claim))
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     "inventory.records",
		Partition: 0,
		Offset:    7,
		Timestamp: time.Now(),
		Value:     []byte(value),
	}
}

func TestRecordStreamHandler_ConsumeClaim(t *testing.T) {
	const buyOrder = `{"type":"RECORD","stream":"BuyOrders","record":{"id":"PO1"}}`

	tests := []struct {
		name   string
		value  string
		doMock func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage)
	}{
		{
			name:  "record processed and marked",
			value: buyOrder,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.sink.EXPECT().Process(gomock.Any(), "BuyOrders", json.RawMessage(`{"id":"PO1"}`)).
					DoAndReturn(func(ctx context.Context, _ string, _ json.RawMessage) (models.Result, error) {
						assert.NotEmpty(t, xlog.CorrelationID(ctx))
						return models.NewUpsertedResult("BuyOrders", models.NewUpsertOutcome("po-1", true)), nil
					})
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
		{
			name:  "skipped record is marked",
			value: buyOrder,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.sink.EXPECT().Process(gomock.Any(), "BuyOrders", gomock.Any()).
					Return(models.NewSkippedResult("BuyOrders", "order has no line items"), nil)
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
		{
			name:  "state message is ignored",
			value: `{"type":"STATE","value":{}}`,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
		{
			name:  "fatal error goes to dlq",
			value: buyOrder,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.sink.EXPECT().Process(gomock.Any(), "BuyOrders", gomock.Any()).
					Return(models.Result{Stream: "BuyOrders"}, common.ErrUnexpectedStatus)
				th.dlq.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, failed models.FailedMessage) error {
						assert.Equal(t, "BuyOrders", failed.Stream)
						assert.Equal(t, msg.Value, failed.Payload)
						assert.ErrorIs(t, failed.CauseError, common.ErrUnexpectedStatus)
						return nil
					})
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
		{
			name:  "invalid envelope goes to dlq",
			value: `{"type":"RECORD","record":{}}`,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.dlq.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, failed models.FailedMessage) error {
						assert.ErrorIs(t, failed.CauseError, common.ErrInvalidEnvelope)
						return nil
					})
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
		{
			name:  "message is marked when dlq publish fails",
			value: `not json`,
			doMock: func(th recordStreamHandlerHelper, msg *sarama.ConsumerMessage) {
				th.dlq.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError)
				th.session.EXPECT().MarkMessage(msg, "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newRecordStreamHandlerHelper(t)
			msg := message(tt.value)
			tt.doMock(th, msg)

			th.consume(t, msg)
		})
	}
}

func TestRecordStreamHandler_ConsumeClaim_ContextDone(t *testing.T) {
	th := newRecordStreamHandlerHelper(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	th.claim.EXPECT().Messages().Return((<-chan *sarama.ConsumerMessage)(make(chan *sarama.ConsumerMessage))).AnyTimes()
	th.session.EXPECT().Context().Return(ctx).AnyTimes()

	assert.NoError(t, th.handler.ConsumeClaim(th.session, th.claim))
}

func TestRecordStreamHandler_SetupCleanup(t *testing.T) {
	th := newRecordStreamHandlerHelper(t)

	th.session.EXPECT().MemberID().Return("member-1").Times(2)
	th.session.EXPECT().GenerationID().Return(int32(3))

	assert.NoError(t, th.handler.Setup(th.session))
	assert.NoError(t, th.handler.Cleanup(th.session))
}

func Test_correlationID(t *testing.T) {
	msg := message("{}")
	assert.NotEmpty(t, correlationID(msg))

	msg.Headers = []*sarama.RecordHeader{{Key: []byte("X-Correlation-Id"), Value: []byte("corr-9")}}
	assert.Equal(t, "corr-9", correlationID(msg))
}
