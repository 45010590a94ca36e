package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/datafocus/go-inventory-sink/internal/common/validation"
)

const envPrefix = "INVENTORY_SINK"

type loadOptions struct {
	fileName    string
	searchPaths []string
}

type LoadOption func(*loadOptions)

func WithConfigFileName(name string) LoadOption {
	return func(o *loadOptions) { o.fileName = name }
}

func WithConfigFileSearchPaths(paths ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// Load reads the config file (if any) and applies INVENTORY_SINK_* environment
// overrides, e.g. INVENTORY_SINK_ZOHO_ORGANIZATION_ID.
func Load(opts ...LoadOption) (cfg Config, err error) {
	o := &loadOptions{fileName: "config"}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetConfigName(o.fileName)
	for _, p := range o.searchPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed unmarshal config: %w", err)
	}

	if err = validation.ValidateStruct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-inventory-sink")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.graceful_timeout", 10*time.Second)
	v.SetDefault("zoho.base_url", "https://www.zohoapis.com/inventory/v1")
	v.SetDefault("zoho.timeout", 30*time.Second)
	v.SetDefault("sink.vendor_policy", string(VendorPolicySkip))
	v.SetDefault("message_broker.http_port", 8081)

	// keys without defaults are invisible to AutomaticEnv on Unmarshal
	for _, key := range []string{
		"zoho.access_token",
		"zoho.organization_id",
		"zoho.export_warehouse_id",
		"vendor_cache.ttl",
		"redis.host",
		"redis.port",
		"redis.password",
		"redis.db",
		"message_broker.kafka_consumer.brokers",
		"message_broker.kafka_consumer.consumer_group",
		"message_broker.kafka_consumer.topic",
		"message_broker.kafka_consumer.topic_dlq",
		"message_broker.kafka_consumer.assignor",
		"message_broker.kafka_consumer.is_oldest",
		"message_broker.kafka_consumer.is_verbose",
		"new_relic_license_key",
	} {
		_ = v.BindEnv(key)
	}
}
