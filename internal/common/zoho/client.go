package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/httpclient"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

var logMessage = "[ZOHO-CLIENT]"

const (
	authScheme   = "Zoho-oauthtoken"
	itemsPerPage = 200
)

type Client interface {
	// SearchVendors looks up vendor contacts by exact name.
	SearchVendors(ctx context.Context, name string) ([]models.ZohoContact, error)
	// SearchVendorsContaining looks up vendor contacts whose name contains the given text.
	SearchVendorsContaining(ctx context.Context, name string) ([]models.ZohoContact, error)
	// SearchItems walks every page of items whose name contains the given text.
	SearchItems(ctx context.Context, nameContains string) ([]models.ZohoItem, error)
	// Post sends an authenticated JSON request, non-2xx responses return common.ErrUnexpectedStatus.
	Post(ctx context.Context, path string, params map[string]string, body any) (Response, error)
}

// Response is the raw result of a request, kept so callers can log the body they could not parse.
type Response struct {
	StatusCode int
	Body       []byte
}

type client struct {
	organizationID string
	request        *httpclient.RequestWrapper
}

func New(configuration config.Zoho, metrics metrics.Metrics) Client {
	restyClient := resty.New()
	restyClient = restyClient.
		SetTransport(monitoring.NewMiddlewareRoundTripper(restyClient.GetClient().Transport)).
		SetBaseURL(strings.TrimRight(configuration.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetAuthScheme(authScheme).
		SetAuthToken(configuration.AccessToken)

	if configuration.Timeout > 0 {
		restyClient = restyClient.SetTimeout(configuration.Timeout)
	}

	return client{
		organizationID: configuration.OrganizationID,
		request:        httpclient.NewRequestWrapper(restyClient, metrics, SERVICE_NAME, logMessage),
	}
}

func (c client) SearchVendors(ctx context.Context, name string) (res []models.ZohoContact, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return c.searchContacts(ctx, map[string]string{
		"contact_type": "vendor",
		"contact_name": name,
	})
}

func (c client) SearchVendorsContaining(ctx context.Context, name string) (res []models.ZohoContact, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return c.searchContacts(ctx, map[string]string{
		"contact_type":          "vendor",
		"contact_name_contains": name,
	})
}

func (c client) searchContacts(ctx context.Context, params map[string]string) ([]models.ZohoContact, error) {
	httpRes, err := c.do(ctx, http.MethodGet, "/contacts", params, nil)
	if err != nil {
		return nil, err
	}

	var res models.ZohoContactsResponse
	if err = json.Unmarshal(httpRes.Body, &res); err != nil {
		return nil, fmt.Errorf("error unmarshal response: %w", err)
	}

	return res.Contacts, nil
}

func (c client) SearchItems(ctx context.Context, nameContains string) (items []models.ZohoItem, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(
			xlog.String("nameContains", nameContains),
			xlog.Int("items", len(items)),
		))
	}()

	for page := 1; ; page++ {
		httpRes, err := c.do(ctx, http.MethodGet, "/items", map[string]string{
			"name_contains": nameContains,
			"page":          strconv.Itoa(page),
			"per_page":      strconv.Itoa(itemsPerPage),
		}, nil)
		if err != nil {
			return nil, err
		}

		var res models.ZohoItemsResponse
		if err = json.Unmarshal(httpRes.Body, &res); err != nil {
			return nil, fmt.Errorf("error unmarshal response page %d: %w", page, err)
		}

		items = append(items, res.Items...)
		if !res.PageContext.HasMorePage {
			return items, nil
		}
	}
}

func (c client) Post(ctx context.Context, path string, params map[string]string, body any) (res Response, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(
			xlog.String("path", path),
			xlog.Int("httpStatusCode", res.StatusCode),
		))
	}()

	return c.do(ctx, http.MethodPost, path, params, body)
}

func (c client) do(ctx context.Context, method, path string, params map[string]string, body any) (Response, error) {
	httpRes, err := c.request.DoRequest(ctx, method, path, func(req *resty.Request) *resty.Request {
		req = req.
			SetHeader("X-Correlation-Id", xlog.CorrelationID(ctx)).
			SetQueryParams(c.withOrganization(params))
		if body != nil {
			req = req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		return req
	})
	if err != nil {
		return Response{}, err
	}

	res := Response{
		StatusCode: httpRes.StatusCode(),
		Body:       httpRes.Body(),
	}

	if !httpclient.IsSuccess(res.StatusCode) {
		return res, fmt.Errorf("%w: %s %s got %d: %s", common.ErrUnexpectedStatus, method, path, res.StatusCode, string(res.Body))
	}

	return res, nil
}

func (c client) withOrganization(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	if c.organizationID != "" {
		out["organization_id"] = c.organizationID
	}
	return out
}
