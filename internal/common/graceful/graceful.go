package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
)

type ProcessStarter func() error

type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

// StartProcessAtBackground runs every starter in its own goroutine. A starter that
// returns an error is logged and cancel is called, so the caller stops the rest.
func StartProcessAtBackground(cancel context.CancelFunc, ps ...ProcessStarter) {
	for _, p := range ps {
		if p == nil {
			continue
		}
		go func(start ProcessStarter) {
			if err := start(); err != nil {
				xlog.Error(context.Background(), "[GRACEFUL]", xlog.String("message", "process stopped"), xlog.Err(err))
				if cancel != nil {
					cancel()
				}
			}
		}(p)
	}
}

// StopProcessAtBackground blocks until ctx is done or a stop signal arrives, then stops ps.
func StopProcessAtBackground(ctx context.Context, duration time.Duration, ps ...ProcessStopper) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		xlog.Info(ctx, "[GRACEFUL]", xlog.String("signal", s.String()))
	case <-ctx.Done():
	}

	return StopProcess(duration, ps...)
}

// StopProcess calls the stoppers in reverse registration order, each with its own timeout.
func StopProcess(duration time.Duration, ps ...ProcessStopper) error {
	stoppers := slices.Clone(ps)
	slices.Reverse(stoppers)

	var errs *multierror.Error
	for _, p := range stoppers {
		if p == nil {
			continue
		}
		func() {
			ctx, stop := context.WithTimeout(context.Background(), duration)
			defer stop()
			if err := p(ctx); err != nil {
				errs = multierror.Append(errs, err)
			}
		}()
	}

	return errs.ErrorOrNil()
}
