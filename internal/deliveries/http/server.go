package http

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/deliveries/http/health"
)

type svc struct {
	e    *echo.Echo
	addr string
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)
		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			xlog.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// NewHTTPServer serves the health probe and the prometheus endpoint next to a worker process.
func NewHTTPServer(
	ctx context.Context,
	conf config.Config,
	nr *newrelic.Application,
	mtc metrics.Metrics,
	check *health.HealthCheck,
) *svc {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true

	svc := &svc{
		e:    app,
		addr: fmt.Sprintf(":%d", conf.MessageBroker.HTTPPort),
	}

	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())
	app.Use(requestContext())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))
	}

	// Endpoint debug/pprof/
	if config.StringToEnvironment(conf.App.Env) != config.PROD_ENV {
		pprof.Register(app)
	}

	promCfg := echoprometheus.MiddlewareConfig{
		Subsystem: metrics.BuildFQName(conf.App.Name, "http"),
	}
	if mtc != nil {
		promCfg.Registerer = mtc.PrometheusRegisterer()
	}
	app.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))
	app.GET("/metrics", echoprometheus.NewHandler())

	check.Route(app.Group("/api/health"))

	xlog.Info(ctx, "[HTTP-SERVER]", xlog.String("addr", svc.addr))

	return svc
}

// requestContext puts the request id on the request context as the correlation id.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			ctx := xlog.WithCorrelationID(req.Context(), c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			xlog.Debug(ctx, "[HTTP.REQUEST]",
				xlog.String("method", req.Method),
				xlog.String("path", c.Path()),
				xlog.Int("status", c.Response().Status),
				xlog.Duration("latency", time.Since(start)),
			)

			return err
		}
	}
}
