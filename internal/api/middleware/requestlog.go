package middleware

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"

	// RequestIDKey is the echo context key holding the request ID.
	RequestIDKey = "request_id"
)

// quietPaths are polled often enough that only the first success and every
// failure are worth a log line.
var quietPaths = map[string]struct{}{
	"/api/v1/health_check": {},
	"/metrics":             {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context. 5xx responses log at error, 4xx at
// warn, everything else at info.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var quietSeen sync.Map // path -> *atomic.Bool

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(RequestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)
			if err != nil {
				// Let echo write the error response so the logged status is final.
				c.Error(err)
				err = nil
			}

			path := c.Request().URL.Path
			status := c.Response().Status

			if _, quiet := quietPaths[path]; quiet && status < 400 {
				v, _ := quietSeen.LoadOrStore(path, &atomic.Bool{})
				if v.(*atomic.Bool).Swap(true) {
					return err
				}
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			log.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.String("route", c.Path()),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", reqID),
			)

			return err
		}
	}
}
