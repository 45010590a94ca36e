package singer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/services"
)

const (
	logMessage = "[SINGER-TARGET]"

	maxLineSize = 16 * 1024 * 1024
)

// Summary counts the lines of one run. Ignored covers SCHEMA, STATE and other non record lines.
type Summary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Ignored   int `json:"ignored"`
}

type Runner struct {
	sink     services.SinkService
	failFast bool
	stateOut io.Writer
}

type Option func(*Runner)

// WithFailFast stops the run at the first failed record.
func WithFailFast(failFast bool) Option {
	return func(r *Runner) { r.failFast = failFast }
}

// WithStateOutput writes the value of the last STATE message to w once the run ends.
func WithStateOutput(w io.Writer) Option {
	return func(r *Runner) { r.stateOut = w }
}

func New(sink services.SinkService, opts ...Option) *Runner {
	r := &Runner{sink: sink}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type stateMessage struct {
	Value json.RawMessage `json:"value"`
}

// Run processes in line by line. Record failures are collected in the returned error and
// the run continues unless fail fast is set. A read error always ends the run.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Summary, error) {
	var (
		summary   Summary
		errs      *multierror.Error
		lastState json.RawMessage
	)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, multierror.Append(errs, err).ErrorOrNil()
		}

		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		envelope, err := models.ParseSingerMessage(line)
		if err == nil && !envelope.IsRecord() {
			summary.Ignored++
			if envelope.Type == models.SingerMessageTypeState {
				var state stateMessage
				if json.Unmarshal(line, &state) == nil && len(state.Value) > 0 {
					lastState = state.Value
				}
			}
			continue
		}

		if err == nil {
			var res models.Result
			res, err = r.sink.Process(ctx, envelope.Stream, envelope.Record)
			if err == nil {
				if res.Skipped {
					summary.Skipped++
				} else {
					summary.Processed++
				}
				continue
			}
		}

		summary.Failed++
		err = fmt.Errorf("line %d: %w", lineNum, err)
		errs = multierror.Append(errs, err)
		xlog.Warn(ctx, logMessage, xlog.Int("line", lineNum), xlog.String("stream", envelope.Stream), xlog.Err(err))

		if r.failFast {
			return summary, errs.ErrorOrNil()
		}
	}

	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("failed read input: %w", err))
	}

	if r.stateOut != nil && lastState != nil {
		if _, err := fmt.Fprintf(r.stateOut, "%s\n", lastState); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed write state: %w", err))
		}
	}

	xlog.Info(ctx, logMessage,
		xlog.Int("processed", summary.Processed),
		xlog.Int("skipped", summary.Skipped),
		xlog.Int("failed", summary.Failed),
		xlog.Int("ignored", summary.Ignored),
	)

	return summary, errs.ErrorOrNil()
}
