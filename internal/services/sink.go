package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

type SinkService interface {
	// Process routes the record to the processor of its stream, runs Preprocess and, unless
	// the record is skipped, Upsert. Any returned error is fatal for the record.
	Process(ctx context.Context, stream string, record json.RawMessage) (models.Result, error)
}

// StreamUnknown labels records whose stream has no processor, so arbitrary
// stream names never become metric series.
const StreamUnknown = "unknown"

type sink service

var _ SinkService = (*sink)(nil)

func (s sink) Process(ctx context.Context, stream string, record json.RawMessage) (res models.Result, err error) {
	monitor := monitoring.New(ctx)
	startTime := time.Now()
	metricStream := StreamUnknown
	defer func() {
		status := res.Status()
		if err != nil {
			status = "failed"
		}
		if s.srv.metrics != nil {
			s.srv.metrics.GetSinkPrometheus().Record(startTime, metricStream, status)
		}
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(
			xlog.String("stream", stream),
			xlog.String("result", status),
		))
	}()

	processor, err := s.srv.Processors.GetProcessor(stream)
	if err != nil {
		return models.Result{Stream: stream}, err
	}

	stream = processor.Stream()
	metricStream = stream

	sub, err := processor.Preprocess(ctx, record)
	if err != nil {
		return models.Result{Stream: stream}, err
	}

	if sub.Skipped() {
		return models.NewSkippedResult(stream, sub.SkipReason), nil
	}

	outcome, err := processor.Upsert(ctx, sub)
	if err != nil {
		return models.Result{Stream: stream}, err
	}

	return models.NewUpsertedResult(stream, outcome), nil
}
