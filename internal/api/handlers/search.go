package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/tcg-analytics/internal/ebay"
	"github.com/donaldgifford/tcg-analytics/internal/upstream"
	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

const defaultSearchLimit = 10

// MarketSearcher runs a marketplace search and summarizes the result.
type MarketSearcher interface {
	Search(ctx context.Context, req ebay.SearchRequest) (*domain.MarketplaceData, error)
}

// SearchHandler handles eBay search requests.
type SearchHandler struct {
	searcher MarketSearcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher MarketSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchInput is the request body for the search endpoint.
type SearchInput struct {
	Body struct {
		Query      string            `json:"query" minLength:"1" doc:"eBay search query" example:"Charizard Base Set holo"`
		CategoryID string            `json:"category_id,omitempty" doc:"eBay category ID (default 2536, trading cards)" example:"2536"`
		Limit      int               `json:"limit,omitempty" minimum:"1" maximum:"200" doc:"Maximum results to return (default 10)" example:"10"`
		Offset     int               `json:"offset,omitempty" minimum:"0" doc:"Number of results to skip" example:"0"`
		Sort       string            `json:"sort,omitempty" doc:"Sort order" example:"price"`
		Filters    map[string]string `json:"filters,omitempty" doc:"Browse API filter conditions, key to value"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body *domain.MarketplaceData
}

// Search proxies a search request to the eBay Browse API.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	limit := input.Body.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	category := input.Body.CategoryID
	if category == "" {
		category = ebay.CategoryTradingCards
	}

	conditions := make(map[string]any, len(input.Body.Filters))
	for k, v := range input.Body.Filters {
		conditions[k] = v
	}

	data, err := h.searcher.Search(ctx, ebay.SearchRequest{
		Query:       input.Body.Query,
		CategoryIDs: category,
		Filter:      ebay.BuildFilter(conditions),
		Sort:        input.Body.Sort,
		Limit:       limit,
		Offset:      input.Body.Offset,
	})
	if err != nil {
		if upstream.IsNotConfigured(err) {
			return nil, huma.Error503ServiceUnavailable("eBay is not configured: " + err.Error())
		}
		return nil, huma.Error502BadGateway("eBay API error: " + err.Error())
	}

	return &SearchOutput{Body: data}, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-ebay",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search eBay listings",
		Description: "Proxies a search to the eBay Browse API and returns listings with a price summary.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Search)
}
