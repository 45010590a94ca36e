package config

import (
	"time"
)

type (
	Config struct {
		App           App           `json:"app" mapstructure:"app"`
		Zoho          Zoho          `json:"zoho" mapstructure:"zoho"`
		Sink          Sink          `json:"sink" mapstructure:"sink"`
		VendorCache   VendorCache   `json:"vendor_cache" mapstructure:"vendor_cache"`
		Redis         Redis         `json:"redis" mapstructure:"redis"`
		MessageBroker MessageBroker `json:"message_broker" mapstructure:"message_broker"`

		NewRelicLicenseKey string `json:"new_relic_license_key" mapstructure:"new_relic_license_key"`
	}

	App struct {
		Env             string        `json:"env" mapstructure:"env"`
		Name            string        `json:"name" mapstructure:"name"`
		HTTPPort        int           `json:"http_port" mapstructure:"http_port"`
		GracefulTimeout time.Duration `json:"graceful_timeout" mapstructure:"graceful_timeout"`
		LogLevel        string        `json:"log_level" mapstructure:"log_level"`
	}

	// Zoho is the inventory API the sink writes to.
	Zoho struct {
		BaseURL     string `json:"base_url" mapstructure:"base_url" validate:"required,url"`
		AccessToken string `json:"access_token" mapstructure:"access_token"`

		// OrganizationID is sent as organization_id on every request when set.
		OrganizationID string `json:"organization_id" mapstructure:"organization_id"`

		// ExportWarehouseID is copied onto every assembly order line item when set.
		ExportWarehouseID string `json:"export_warehouse_id" mapstructure:"export_warehouse_id"`

		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	Sink struct {
		VendorPolicy VendorPolicy `json:"vendor_policy" mapstructure:"vendor_policy" validate:"omitempty,oneof=skip fail"`
	}

	VendorCache struct {
		// TTL of resolved vendor ids, zero disables the cache.
		TTL time.Duration `json:"ttl" mapstructure:"ttl"`
	}

	Redis struct {
		Host     string `json:"host" mapstructure:"host"`
		Port     string `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		Db       int    `json:"db" mapstructure:"db"`
	}

	MessageBroker struct {
		HTTPPort      int            `json:"http_port" mapstructure:"http_port"`
		KafkaConsumer ConsumerConfig `json:"kafka_consumer" mapstructure:"kafka_consumer"`
	}

	ConsumerConfig struct {
		Brokers       []string `json:"brokers" mapstructure:"brokers"`
		ConsumerGroup string   `json:"consumer_group" mapstructure:"consumer_group"`
		Topic         string   `json:"topic" mapstructure:"topic"`
		TopicDLQ      string   `json:"topic_dlq" mapstructure:"topic_dlq"`
		Assignor      string   `json:"assignor" mapstructure:"assignor"`
		IsOldest      bool     `json:"is_oldest" mapstructure:"is_oldest"`
		IsVerbose     bool     `json:"is_verbose" mapstructure:"is_verbose"`
	}
)

// VendorPolicy decides what happens to a record whose vendor cannot be resolved.
type VendorPolicy string

const (
	VendorPolicySkip VendorPolicy = "skip"
	VendorPolicyFail VendorPolicy = "fail"
)

// Effective returns the policy to apply, skip when unset.
func (p VendorPolicy) Effective() VendorPolicy {
	if p == VendorPolicyFail {
		return VendorPolicyFail
	}
	return VendorPolicySkip
}

func (r Redis) Enabled() bool {
	return r.Host != ""
}
