package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafocus/go-inventory-sink/internal/common/httpclient"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestRequestWrapper_DoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "v", r.URL.Query().Get("k"))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"bad"}`))
		}
	}))
	defer server.Close()

	wrapper := httpclient.NewRequestWrapper(
		resty.New().SetBaseURL(server.URL),
		metrics.NewWithRegisterer(prometheus.NewRegistry()),
		"test",
		"[TEST]",
	)

	t.Run("success", func(t *testing.T) {
		res, err := wrapper.DoRequest(context.Background(), http.MethodPost, "/ok", func(r *resty.Request) *resty.Request {
			return r.SetQueryParam("k", "v")
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode())
		assert.JSONEq(t, `{"ok":true}`, string(res.Body()))
	})

	t.Run("non 2xx is returned without error", func(t *testing.T) {
		res, err := wrapper.DoRequest(context.Background(), http.MethodGet, "/bad", nil)
		require.NoError(t, err)
		assert.False(t, httpclient.IsSuccess(res.StatusCode()))
	})

	t.Run("unsupported method", func(t *testing.T) {
		_, err := wrapper.DoRequest(context.Background(), http.MethodPatch, "/ok", nil)
		assert.Error(t, err)
	})

	t.Run("transport error", func(t *testing.T) {
		broken := httpclient.NewRequestWrapper(resty.New().SetBaseURL("http://127.0.0.1:1"), nil, "test", "[TEST]")
		_, err := broken.DoRequest(context.Background(), http.MethodGet, "/ok", nil)
		assert.Error(t, err)
	})
}
