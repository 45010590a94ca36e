package messaging

import (
	"errors"
	"os"
	"strings"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
)

var ErrNoBrokers = errors.New("no kafka bootstrap brokers defined, please set the brokers")

// CreateSaramaConsumerConfig builds the consumer group config. Verbose mode routes
// sarama's own logger through xlog with logPrefix.
func CreateSaramaConsumerConfig(cfg config.ConsumerConfig, logPrefix string) (*sarama.Config, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V3_0_0_0
	saramaCfg.ClientID, _ = os.Hostname()
	saramaCfg.Consumer.Return.Errors = true

	if cfg.IsVerbose {
		sarama.Logger = zap.NewStdLog(xlog.Logger().Named(strings.Trim(logPrefix, "[] ")))
	}

	if cfg.IsOldest {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	switch strings.ToLower(cfg.Assignor) {
	case "sticky":
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategySticky}
	case "roundrobin":
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRoundRobin}
	default:
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRange}
	}

	return saramaCfg, nil
}
