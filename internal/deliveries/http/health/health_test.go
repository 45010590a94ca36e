package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	app := echo.New()
	check := NewHealthCheck()
	check.Route(app.Group("/api/health"))

	call := func() (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		resp := rec.Result()
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := call()
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"kind":"health","status":"server is up and running"}`, body)

	check.Shutdown()

	code, body = call()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.JSONEq(t, `{"kind":"health","status":"server is shutting down"}`, body)
}
