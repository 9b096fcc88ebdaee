package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// HealthOutput is the response body for the health check.
type HealthOutput struct {
	Body domain.HealthStatus
}

// HealthCheck reports that the process is up. It does not probe upstreams.
func HealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: domain.HealthStatus{
		Status:  "healthy",
		Message: "API is running",
	}}, nil
}

// RegisterHealthRoutes registers the health check with the Huma API.
func RegisterHealthRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health_check",
		Summary:     "Health check",
		Description: "Returns 200 while the API process is running.",
		Tags:        []string{"health"},
	}, HealthCheck)
}
