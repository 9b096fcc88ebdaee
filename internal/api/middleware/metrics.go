// Package middleware provides Echo middleware for the tcg-analytics server.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/tcg-analytics/internal/metrics"
)

// unmatchedRoute labels requests that matched no route, keeping 404 scans
// from creating one series per probed URL.
const unmatchedRoute = "unmatched"

const healthPath = "/api/v1/health_check"

// metricsSkipPaths are excluded from the request histogram and counter.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	healthPath: {},
}

// Metrics returns Echo middleware that records request duration and status
// by route template. The health check updates metrics.HealthUp instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
				err = nil
			}

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedRoute
			}
			status := c.Response().Status

			if _, skip := metricsSkipPaths[path]; skip {
				if path == healthPath {
					setHealth(status)
				}
				return err
			}

			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.
				WithLabelValues(labels...).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(labels...).
				Inc()

			return err
		}
	}
}

func setHealth(status int) {
	if status >= 200 && status < 300 {
		metrics.HealthUp.Set(1)
	} else {
		metrics.HealthUp.Set(0)
	}
}
