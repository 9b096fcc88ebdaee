// Package ebay provides an eBay Browse and Catalog API client abstracted
// behind interfaces for testability.
package ebay

import (
	"context"
)

const (
	// MaxLimit is the largest page size the Browse and Catalog APIs accept.
	MaxLimit = 200

	// CategoryTradingCards is the eBay category ID for collectible card games.
	CategoryTradingCards = "2536"

	defaultSearchLimit  = 50
	defaultProductLimit = 200
)

// SearchRequest defines the parameters for a Browse API item search.
type SearchRequest struct {
	Query       string
	CategoryIDs string
	Filter      string // see BuildFilter
	Sort        string // "price", "-price", "newlyListed", ...
	Limit       int // 0 means the API default (50); capped at MaxLimit
	Offset      int
	Params      map[string]string // extra query parameters, e.g. "aspect_filter"
}

// SearchResponse holds the results of an item search.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// ImageSearchRequest defines the parameters for a search by image.
type ImageSearchRequest struct {
	Image       []byte // raw image bytes, base64-encoded on the wire
	CategoryIDs string
	Filter      string
	Sort        string
	Limit       int
	Offset      int
}

// ProductSearchRequest defines the parameters for a Catalog API product search.
type ProductSearchRequest struct {
	Query       string
	CategoryIDs string
	GTIN        string
	MPN         string
	Limit       int
	Offset      int
}

// EbayClient defines the marketplace search used by the aggregator and the
// search handler.
type EbayClient interface {
	SearchItems(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// clampLimit applies the default for an unset (zero) limit and caps at
// MaxLimit. Anything else, negative values included, is sent as given.
func clampLimit(limit, def int) int {
	if limit == 0 {
		return def
	}
	return min(limit, MaxLimit)
}
