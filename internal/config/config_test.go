package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults and env override", func(t *testing.T) {
		t.Setenv("INVENTORY_SINK_ZOHO_ORGANIZATION_ID", "org-1")
		t.Setenv("INVENTORY_SINK_SINK_VENDOR_POLICY", "fail")

		cfg, err := Load(WithConfigFileSearchPaths(t.TempDir()))
		require.NoError(t, err)

		assert.Equal(t, "go-inventory-sink", cfg.App.Name)
		assert.Equal(t, "org-1", cfg.Zoho.OrganizationID)
		assert.Equal(t, 30*time.Second, cfg.Zoho.Timeout)
		assert.Equal(t, VendorPolicyFail, cfg.Sink.VendorPolicy)
	})

	t.Run("read from file", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
app:
  name: sink-test
zoho:
  base_url: http://localhost:9000
  export_warehouse_id: wh-9
vendor_cache:
  ttl: 5m
message_broker:
  kafka_consumer:
    brokers: ["localhost:9092"]
    topic: records
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

		cfg, err := Load(WithConfigFileSearchPaths(dir))
		require.NoError(t, err)

		assert.Equal(t, "sink-test", cfg.App.Name)
		assert.Equal(t, "http://localhost:9000", cfg.Zoho.BaseURL)
		assert.Equal(t, "wh-9", cfg.Zoho.ExportWarehouseID)
		assert.Equal(t, 5*time.Minute, cfg.VendorCache.TTL)
		assert.Equal(t, []string{"localhost:9092"}, cfg.MessageBroker.KafkaConsumer.Brokers)
	})

	t.Run("invalid vendor policy", func(t *testing.T) {
		t.Setenv("INVENTORY_SINK_SINK_VENDOR_POLICY", "retry")

		_, err := Load(WithConfigFileSearchPaths(t.TempDir()))
		assert.Error(t, err)
	})
}

func TestVendorPolicy_Effective(t *testing.T) {
	assert.Equal(t, VendorPolicySkip, VendorPolicy("").Effective())
	assert.Equal(t, VendorPolicySkip, VendorPolicySkip.Effective())
	assert.Equal(t, VendorPolicyFail, VendorPolicyFail.Effective())
}

func TestStringToEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"", LOCAL_ENV},
		{"local", LOCAL_ENV},
		{"DEV", DEV_ENV},
		{"staging", UAT_ENV},
		{"prod", PROD_ENV},
		{"production", PROD_ENV},
		{"qa", UNDEFINED_ENV},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StringToEnvironment(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "prod", PROD_ENV.String())
	assert.Equal(t, "undefined", UNDEFINED_ENV.String())
}
