package monitoring

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestNew_WithoutTransaction(t *testing.T) {
	monitor := New(context.Background())

	assert.Equal(t, "monitoring.TestNew_WithoutTransaction", monitor.segmentName)
	assert.Equal(t, LayerUnknown, monitor.layer)

	assert.NotPanics(t, func() {
		monitor.Finish(WithFinishCheckError(errors.New("boom")), WithFinishXlogFields(xlog.String("stream", "Bills")))
	})
}

func TestNew_WithOptions(t *testing.T) {
	monitor := New(context.Background(), WithLayer(LayerClient), WithSegmentName("zoho.SearchItems"))

	assert.Equal(t, "zoho.SearchItems", monitor.segmentName)
	assert.Equal(t, LayerClient, monitor.layer)
	assert.NotPanics(t, func() { monitor.Finish() })
}

func TestLayerOf(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/src/internal/services/sink.go", LayerService},
		{"/src/internal/deliveries/singer/runner.go", LayerDelivery},
		{"/src/internal/common/zoho/client.go", LayerClient},
		{"/src/cmd/target/main.go", LayerUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, layerOf(tt.file))
		})
	}
}
