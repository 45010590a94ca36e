package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerService  = "services"
	LayerDelivery = "deliveries"
	LayerClient   = "clients"
	LayerUnknown  = "unknown"
)

// layerByPath maps a source path fragment to the layer it belongs to, first match wins.
var layerByPath = []struct {
	fragment string
	layer    string
}{
	{"internal/services", LayerService},
	{"internal/deliveries", LayerDelivery},
	{"internal/common/zoho", LayerClient},
}

// Monitor wraps one unit of work in a newrelic segment and logs its outcome on Finish.
type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time

	segment *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// New starts a segment on the transaction carried by ctx, if any. Without
// options the segment is named after the calling function.
func New(ctx context.Context, opts ...InitOption) *Monitor {
	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.segmentName == "" || o.layer == "" {
		// must stay in New itself, Caller(1) is the function being monitored
		pc, file, _, ok := runtime.Caller(1)
		if o.segmentName == "" {
			o.segmentName = callerSegmentName(pc, ok)
		}
		if o.layer == "" {
			o.layer = layerOf(file)
		}
	}

	segment := newrelic.FromContext(ctx).StartSegment(o.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", o.layer)
	}

	return &Monitor{
		ctx:         ctx,
		segmentName: o.segmentName,
		layer:       o.layer,
		start:       time.Now(),
		segment:     segment,
	}
}

func callerSegmentName(pc uintptr, ok bool) string {
	if !ok {
		return LayerUnknown
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return LayerUnknown
	}
	return getSegmentName(fn.Name())
}

func layerOf(file string) string {
	for _, l := range layerByPath {
		if strings.Contains(file, l.fragment) {
			return l.layer
		}
	}
	return LayerUnknown
}

// NewMiddlewareRoundTripper reports outgoing requests as external segments of the
// transaction found on the request context.
func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
