package monitoring

import (
	"time"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

var messagePrefix = map[string]string{
	LayerService:  "[SERVICE]",
	LayerDelivery: "[DELIVERY]",
	LayerClient:   "[CLIENT]",
	LayerUnknown:  "[-]",
}

type finishOptions struct {
	err    error
	fields []xlog.Field
}

type FinishOption func(*finishOptions)

func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishXlogFields(fields ...xlog.Field) FinishOption {
	return func(o *finishOptions) {
		o.fields = append(o.fields, fields...)
	}
}

// Finish ends the segment. Errors are logged at warn from every layer, successes
// only from services and deliveries so a record produces one success line.
func (m *Monitor) Finish(opts ...FinishOption) {
	o := &finishOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if m.segment != nil {
		defer m.segment.End()
	}

	fields := append(o.fields,
		xlog.String("segment", m.segmentName),
		xlog.Duration("processDuration", time.Since(m.start)),
	)

	switch {
	case o.err != nil:
		if m.segment != nil {
			m.segment.AddAttribute("error", o.err.Error())
		}
		xlog.Warn(m.ctx, messagePrefix[m.layer], append(fields, xlog.String("status", "error"), xlog.Err(o.err))...)
	case m.layer == LayerService || m.layer == LayerDelivery:
		xlog.Info(m.ctx, messagePrefix[m.layer], append(fields, xlog.String("status", "success"))...)
	}
}
