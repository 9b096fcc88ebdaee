package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/cards/12345",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=GET",
				"path=/api/v1/cards/12345",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "client error logs at warn",
			method: http.MethodGet,
			path:   "/api/v1/cards/12345",
			status: http.StatusBadRequest,
			wantLogFields: []string{
				"level=WARN",
				"status=400",
			},
		},
		{
			name:   "server error logs at error",
			method: http.MethodPost,
			path:   "/api/v1/search",
			status: http.StatusBadGateway,
			wantLogFields: []string{
				"level=ERROR",
				"method=POST",
				"status=502",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			err := handler(c)
			require.NoError(t, err)

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)

			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}

			assert.NotEmpty(t, c.Get(RequestIDKey))
		})
	}
}

func TestRequestLog_HandlerErrorStatusLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLog(logger)(func(_ echo.Context) error {
		return echo.ErrNotFound
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestRequestLog_PlainErrorBecomes500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/boom", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLog(logger)(func(_ echo.Context) error {
		return errors.New("boom")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestRequestLog_HealthFirstSuccessLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// First request: logged.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health_check", http.NoBody)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Contains(t, buf.String(), "path=/api/v1/health_check")
	assert.Contains(t, buf.String(), "status=200")

	firstLogLen := buf.Len()

	// Later successes: suppressed.
	for range 2 {
		req = httptest.NewRequest(http.MethodGet, "/api/v1/health_check", http.NoBody)
		rec = httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
	}

	assert.Equal(t, firstLogLen, buf.Len(),
		"repeated successful health checks should not produce log output")

	// Other paths are unaffected.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cards/1", http.NoBody)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Greater(t, buf.Len(), firstLogLen)
}

func TestRequestLog_HealthFailureAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	callCount := 0
	handler := RequestLog(logger)(func(c echo.Context) error {
		callCount++
		if callCount == 1 {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health_check", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Contains(t, buf.String(), "status=200")

	firstLen := buf.Len()

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health_check", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Greater(t, buf.Len(), firstLen, "failed health check should be logged")
	assert.Contains(t, buf.String(), "status=503")
	assert.Contains(t, buf.String(), "level=ERROR")

	secondLen := buf.Len()

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health_check", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Greater(t, buf.Len(), secondLen, "failures are never suppressed")
}
