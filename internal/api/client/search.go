package client

import (
	"context"

	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// SearchParams mirrors the search endpoint's request body.
type SearchParams struct {
	Query      string            `json:"query"`
	CategoryID string            `json:"category_id,omitempty"`
	Limit      int               `json:"limit,omitempty"`
	Offset     int               `json:"offset,omitempty"`
	Sort       string            `json:"sort,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

// Search runs an eBay search through the server.
func (c *Client) Search(ctx context.Context, p SearchParams) (*domain.MarketplaceData, error) {
	data, err := c.post(ctx, "/api/v1/search", p)
	if err != nil {
		return nil, err
	}

	var md domain.MarketplaceData
	if err := decode(data, &md); err != nil {
		return nil, err
	}
	return &md, nil
}
