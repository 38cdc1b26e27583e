package middleware

import (
	"strconv"
	"time"

	"crm/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records per-request latency by method, route template and
// status code.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
			Observe(time.Since(start).Seconds())

		return err
	}
}
