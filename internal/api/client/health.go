package client

import (
	"context"

	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// Health calls the health check endpoint.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	data, err := c.get(ctx, "/api/v1/health_check")
	if err != nil {
		return nil, err
	}

	var hs domain.HealthStatus
	if err := decode(data, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}
