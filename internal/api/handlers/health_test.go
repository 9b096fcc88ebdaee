package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/tcg-analytics/internal/api/handlers"
)

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterHealthRoutes(api)

	resp := api.Get("/api/v1/health_check")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"API is running"}`, resp.Body.String())
}
