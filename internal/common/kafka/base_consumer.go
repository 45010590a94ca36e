package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"golang.org/x/sync/errgroup"

	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	"github.com/datafocus/go-inventory-sink/internal/common/messaging"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
)

var (
	ErrNoTopic         = errors.New("no topics given to be consumed, please set the topic")
	ErrNoConsumerGroup = errors.New("no kafka consumer group defined, please set the group")
)

// NewConsumerGroupFunc opens the sarama consumer group, replaced in tests.
type NewConsumerGroupFunc func(brokers []string, group string, cfg *sarama.Config) (sarama.ConsumerGroup, error)

type BaseConsumer struct {
	ctx              context.Context
	clientID         string
	consumerCfg      config.ConsumerConfig
	cg               sarama.ConsumerGroup
	newConsumerGroup NewConsumerGroupFunc
	handler          sarama.ConsumerGroupHandler
	metrics          metrics.Metrics
	logPrefix        string
}

type BaseConsumerConfig struct {
	Ctx      context.Context
	Consumer config.ConsumerConfig
	Metrics  metrics.Metrics
	Handler  sarama.ConsumerGroupHandler

	LogPrefix string

	// NewConsumerGroup defaults to sarama.NewConsumerGroup.
	NewConsumerGroup NewConsumerGroupFunc
}

func NewBaseConsumer(cfg BaseConsumerConfig) *BaseConsumer {
	newConsumerGroup := cfg.NewConsumerGroup
	if newConsumerGroup == nil {
		newConsumerGroup = sarama.NewConsumerGroup
	}

	return &BaseConsumer{
		ctx:              cfg.Ctx,
		consumerCfg:      cfg.Consumer,
		newConsumerGroup: newConsumerGroup,
		handler:          cfg.Handler,
		metrics:          cfg.Metrics,
		logPrefix:        cfg.LogPrefix,
	}
}

func (c *BaseConsumer) ClientID() string {
	return c.clientID
}

func (c *BaseConsumer) PreStart() error {
	saramaCfg, err := messaging.CreateSaramaConsumerConfig(c.consumerCfg, c.logPrefix)
	if err != nil {
		return fmt.Errorf("failed to create consumer config: %w", err)
	}

	if c.consumerCfg.Topic == "" {
		return ErrNoTopic
	}

	if c.consumerCfg.ConsumerGroup == "" {
		return ErrNoConsumerGroup
	}

	if c.metrics != nil {
		saramaCfg.MetricRegistry = c.metrics.SaramaRegistry(metrics.BuildFQName(c.consumerCfg.ConsumerGroup, "sarama"), time.Second)
	}

	c.clientID = saramaCfg.ClientID

	client, err := c.newConsumerGroup(c.consumerCfg.Brokers, c.consumerCfg.ConsumerGroup, saramaCfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	c.cg = client

	return nil
}

func (c *BaseConsumer) Start() graceful.ProcessStarter {
	return func() error {
		if err := c.PreStart(); err != nil {
			xlog.Error(c.ctx, c.logPrefix, xlog.Err(err))
			return err
		}

		go func() {
			for errCg := range c.cg.Errors() {
				xlog.Error(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("client error: %w", errCg)))
			}
		}()

		xlog.Info(c.ctx, c.logPrefix,
			xlog.String("message", "consumer started"),
			xlog.String("topic", c.consumerCfg.Topic),
			xlog.String("consumer_group", c.consumerCfg.ConsumerGroup),
		)

		eg, ctx := errgroup.WithContext(c.ctx)

		eg.Go(func() error {
			for {
				// Consume returns on every rebalance and has to be called again
				if err := c.cg.Consume(ctx, []string{c.consumerCfg.Topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return nil
					}
					xlog.Warn(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("error start consumer: %w", err)))
				}
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("context was canceled: %w", err)
				}
			}
		})

		return eg.Wait()
	}
}

func (c *BaseConsumer) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		if c.cg == nil {
			return nil
		}
		return c.cg.Close()
	}
}
