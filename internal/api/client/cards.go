package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// CardResult is a decoded card lookup.
type CardResult struct {
	// Raw is the full response document, numbers kept as json.Number.
	Raw map[string]any
	// Market is the ebay_data section, nil when the server attached none.
	Market *domain.MarketplaceData
}

// GetCard looks up a card by its TCGPlayer ID.
func (c *Client) GetCard(ctx context.Context, cardID string) (*CardResult, error) {
	data, err := c.get(ctx, "/api/v1/cards/"+url.PathEscape(cardID))
	if err != nil {
		return nil, err
	}

	res := &CardResult{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&res.Raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var typed struct {
		Market *domain.MarketplaceData `json:"ebay_data"`
	}
	if err := decode(data, &typed); err != nil {
		return nil, err
	}
	res.Market = typed.Market

	return res, nil
}
