// Package handlers implements HTTP handlers for the ebay-listing-gateway API.
package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler creates a new HealthHandler that reports not ready until
// SetReady(true) is called.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// SetReady flips the readiness state, typically once the listener is up and
// again when shutdown begins.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once the gateway is accepting traffic, 503 otherwise.
//
// @Summary Readiness check
// @Description Returns 200 once the gateway is accepting traffic, 503 otherwise.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} StatusResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.ready.Load() {
		return c.JSON(
			http.StatusServiceUnavailable,
			StatusResponse{Status: "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
