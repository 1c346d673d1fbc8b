// Package middleware provides Echo middleware for the listing gateway.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
)

// UnmatchedRoute is the route label for requests no registered route served.
// Raw URL paths never become label values.
const UnmatchedRoute = "unmatched"

// healthGauges maps health routes to the 0/1 gauge they drive. These routes
// and /metrics stay out of the request histogram and counter.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and count by
// method, route template and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := responseStatus(c, err)
			route := routeLabel(c, status)

			if gauge, ok := healthGauges[route]; ok {
				gauge.Set(boolGauge(status < http.StatusBadRequest))
				return err
			}
			if route == "/metrics" {
				return err
			}

			labels := []string{c.Request().Method, route, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// responseStatus is the status the client will see. An error not yet
// rendered by the error handler is counted by its HTTP code.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// routeLabel returns the matched route template. The router leaves a partial
// prefix or nothing in c.Path() when no route matches, so 404 and 405
// responses are checked against the registered routes.
func routeLabel(c echo.Context, status int) string {
	path := c.Path()
	if path == "" {
		return UnmatchedRoute
	}
	if status != http.StatusNotFound && status != http.StatusMethodNotAllowed {
		return path
	}
	for _, r := range c.Echo().Routes() {
		if r.Path == path {
			return path
		}
	}
	return UnmatchedRoute
}

func boolGauge(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
