package kafka

import (
	"context"
	"os"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/datafocus/go-inventory-sink/internal/common/messaging"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestBaseConsumer_PreStart(t *testing.T) {
	valid := config.ConsumerConfig{
		Brokers:       []string{"localhost:9092"},
		ConsumerGroup: "go-inventory-sink",
		Topic:         "inventory.records",
	}

	tests := []struct {
		name     string
		modify   func(cfg *config.ConsumerConfig)
		groupErr error
		wantErr  error
	}{
		{
			name: "consumer group opened",
		},
		{
			name:    "no brokers",
			modify:  func(cfg *config.ConsumerConfig) { cfg.Brokers = nil },
			wantErr: messaging.ErrNoBrokers,
		},
		{
			name:    "no topic",
			modify:  func(cfg *config.ConsumerConfig) { cfg.Topic = "" },
			wantErr: ErrNoTopic,
		},
		{
			name:    "no consumer group",
			modify:  func(cfg *config.ConsumerConfig) { cfg.ConsumerGroup = "" },
			wantErr: ErrNoConsumerGroup,
		},
		{
			name:     "broker unreachable",
			groupErr: sarama.ErrOutOfBrokers,
			wantErr:  sarama.ErrOutOfBrokers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			if tt.modify != nil {
				tt.modify(&cfg)
			}

			var gotCfg *sarama.Config
			c := NewBaseConsumer(BaseConsumerConfig{
				Ctx:       context.Background(),
				Consumer:  cfg,
				Metrics:   metrics.NewWithRegisterer(prometheus.NewRegistry()),
				LogPrefix: "[TEST]",
				NewConsumerGroup: func(brokers []string, group string, saramaCfg *sarama.Config) (sarama.ConsumerGroup, error) {
					assert.Equal(t, cfg.Brokers, brokers)
					assert.Equal(t, cfg.ConsumerGroup, group)
					gotCfg = saramaCfg
					return nil, tt.groupErr
				},
			})

			err := c.PreStart()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if assert.NotNil(t, gotCfg) {
				assert.NotNil(t, gotCfg.MetricRegistry)
				assert.Equal(t, gotCfg.ClientID, c.ClientID())
			}
		})
	}
}

func TestBaseConsumer_StartFailsOnInvalidConfig(t *testing.T) {
	c := NewBaseConsumer(BaseConsumerConfig{Ctx: context.Background(), LogPrefix: "[TEST]"})

	assert.ErrorIs(t, c.Start()(), messaging.ErrNoBrokers)
	assert.NoError(t, c.Stop()(context.Background()))
}
