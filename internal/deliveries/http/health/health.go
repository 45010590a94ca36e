package health

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

type DoHealthCheckLivenessResponse struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// HealthCheck answers the liveness probe until Shutdown is called, then reports 503.
type HealthCheck struct {
	shuttingDown atomic.Bool
}

func NewHealthCheck() *HealthCheck {
	return &HealthCheck{}
}

func (h *HealthCheck) Route(g *echo.Group) {
	g.GET("", h.healthCheck)
}

func (h *HealthCheck) Shutdown() {
	h.shuttingDown.Store(true)
}

func (h *HealthCheck) healthCheck(c echo.Context) error {
	if h.shuttingDown.Load() {
		return c.JSON(http.StatusServiceUnavailable, DoHealthCheckLivenessResponse{
			Kind:   "health",
			Status: "server is shutting down",
		})
	}

	return c.JSON(http.StatusOK, DoHealthCheckLivenessResponse{
		Kind:   "health",
		Status: "server is up and running",
	})
}
