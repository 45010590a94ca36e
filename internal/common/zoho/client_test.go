package zoho_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/common/zoho"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/models"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, orgID string, handler http.HandlerFunc) zoho.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Zoho-oauthtoken secret-token", r.Header.Get("Authorization"))
		if orgID != "" {
			assert.Equal(t, orgID, r.URL.Query().Get("organization_id"))
		} else {
			assert.False(t, r.URL.Query().Has("organization_id"))
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return zoho.New(config.Zoho{
		BaseURL:        server.URL + "/",
		AccessToken:    "secret-token",
		OrganizationID: orgID,
		Timeout:        5 * time.Second,
	}, metrics.NewWithRegisterer(prometheus.NewRegistry()))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_SearchVendors(t *testing.T) {
	c := newTestClient(t, "org-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contacts", r.URL.Path)
		assert.Equal(t, "vendor", r.URL.Query().Get("contact_type"))

		switch {
		case r.URL.Query().Get("contact_name") == "Acme":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"contacts": []map[string]any{{"contact_id": "123", "contact_name": "Acme"}},
			})
		case r.URL.Query().Get("contact_name_contains") == "Acm":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"contacts": []map[string]any{
					{"contact_id": 123, "contact_name": "Acme"},
					{"contact_id": "456", "contact_name": "Acme Holdings"},
				},
			})
		default:
			writeJSON(t, w, http.StatusOK, map[string]any{"contacts": []any{}})
		}
	})

	t.Run("exact name", func(t *testing.T) {
		got, err := c.SearchVendors(context.Background(), "Acme")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.FlexString("123"), got[0].ContactID)
	})

	t.Run("no exact match", func(t *testing.T) {
		got, err := c.SearchVendors(context.Background(), "Nobody")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("contains", func(t *testing.T) {
		got, err := c.SearchVendorsContaining(context.Background(), "Acm")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, models.FlexString("123"), got[0].ContactID)
		assert.Equal(t, "Acme Holdings", got[1].DisplayName())
	})
}

func TestClient_SearchItems(t *testing.T) {
	var pages []string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "Widget", r.URL.Query().Get("name_contains"))
		assert.Equal(t, "200", r.URL.Query().Get("per_page"))

		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		switch page {
		case "1":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items":        []map[string]any{{"item_id": "i1", "name": "Widget"}},
				"page_context": map[string]any{"page": 1, "has_more_page": true},
			})
		default:
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items":        []map[string]any{{"item_id": "i2", "name": "Widgets"}},
				"page_context": map[string]any{"page": 2, "has_more_page": false},
			})
		}
	})

	got, err := c.SearchItems(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, pages)
	assert.Equal(t, []models.ZohoItem{
		{ItemID: "i1", Name: "Widget"},
		{ItemID: "i2", Name: "Widgets"},
	}, got)
}

func TestClient_Post(t *testing.T) {
	c := newTestClient(t, "org-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		switch r.URL.Path {
		case zoho.PathBundles:
			assert.Equal(t, "true", r.URL.Query().Get("ignore_auto_number_generation"))
			assert.JSONEq(t, `{"composite_item_id":"c1"}`, string(body))
			writeJSON(t, w, http.StatusCreated, map[string]any{"bundle": map[string]any{"bundle_id": "b1"}})
		default:
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"code": 1001, "message": "invalid vendor"})
		}
	})

	t.Run("success", func(t *testing.T) {
		res, err := c.Post(context.Background(), zoho.PathBundles,
			map[string]string{"ignore_auto_number_generation": "true"},
			map[string]string{"composite_item_id": "c1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.JSONEq(t, `{"bundle":{"bundle_id":"b1"}}`, string(res.Body))
	})

	t.Run("unexpected status", func(t *testing.T) {
		res, err := c.Post(context.Background(), zoho.PathPurchaseOrders, nil, map[string]string{})
		assert.ErrorIs(t, err, common.ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "invalid vendor")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}
