package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

// maxLoggedBody caps the response body written to logs, catalog searches can be large.
const maxLoggedBody = 4096

type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest sends the request built by reqFunc. Non-2xx responses are returned without error,
// the caller decides how to treat them.
func (w *RequestWrapper) DoRequest(ctx context.Context, method, url string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	startTime := time.Now()

	logFields := []xlog.Field{
		xlog.String("url", url),
		xlog.String("method", method),
	}

	xlog.Info(ctx, w.logPrefix, append(logFields, xlog.String("message", "send request"))...)

	req := w.client.R().SetContext(ctx)
	if reqFunc != nil {
		req = reqFunc(req)
	}

	var httpRes *resty.Response
	var err error

	switch method {
	case http.MethodGet:
		httpRes, err = req.Get(url)
	case http.MethodPost:
		httpRes, err = req.Post(url)
	case http.MethodPut:
		httpRes, err = req.Put(url)
	case http.MethodDelete:
		httpRes, err = req.Delete(url)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	statusCode := 0
	if httpRes != nil {
		statusCode = httpRes.StatusCode()
	}
	if w.metrics != nil {
		// status 0 marks transport failures
		w.metrics.GetHTTPClientPrometheus().Record(time.Since(startTime), w.serviceName, method, url, statusCode)
	}

	if err != nil {
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.Err(err))...)
		return nil, fmt.Errorf("failed send request: %w", err)
	}

	logFields = append(logFields,
		xlog.String("httpStatusCode", httpRes.Status()),
		xlog.String("httpResponse", truncate(httpRes.Body(), maxLoggedBody)),
	)

	if !IsSuccess(httpRes.StatusCode()) {
		xlog.Warn(ctx, w.logPrefix, logFields...)
	} else {
		xlog.Debug(ctx, w.logPrefix, logFields...)
	}

	return httpRes, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "...(truncated)"
}

func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
