package ebay

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/tcg-analytics/internal/upstream"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1"
	defaultCatalogURL  = "https://api.ebay.com/commerce/catalog/v1_beta"
	defaultMarketplace = "EBAY_US"

	serviceName = "ebay"
)

// Client implements EbayClient and the rest of the Browse and Catalog
// operations. It is safe for concurrent use.
type Client struct {
	tokens     TokenProvider
	browseURL  string
	catalogURL string
	client     *http.Client

	mu          sync.RWMutex
	marketplace string
}

// Option configures the Client.
type Option func(*Client)

// WithBrowseURL overrides the default Browse API base URL.
func WithBrowseURL(u string) Option {
	return func(c *Client) {
		c.browseURL = strings.TrimRight(u, "/")
	}
}

// WithCatalogURL overrides the default Catalog API base URL.
func WithCatalogURL(u string) Option {
	return func(c *Client) {
		c.catalogURL = strings.TrimRight(u, "/")
	}
}

// WithMarketplace overrides the default marketplace.
func WithMarketplace(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.marketplace = m
		}
	}
}

// WithBrowseHTTPClient overrides the default HTTP client.
func WithBrowseHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates an eBay client. A nil provider or an empty static token
// is a configuration error.
func NewClient(tokens TokenProvider, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("%w: ebay access token is required", upstream.ErrNotConfigured)
	}
	if st, ok := tokens.(StaticToken); ok && strings.TrimSpace(string(st)) == "" {
		return nil, fmt.Errorf("%w: ebay access token is required", upstream.ErrNotConfigured)
	}

	c := &Client{
		tokens:      tokens,
		browseURL:   defaultBrowseURL,
		catalogURL:  defaultCatalogURL,
		marketplace: defaultMarketplace,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetMarketplace changes the marketplace for subsequent calls. Calls already
// in flight keep the marketplace they started with.
func (c *Client) SetMarketplace(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marketplace = id
}

// Marketplace returns the marketplace ID used for new calls.
func (c *Client) Marketplace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.marketplace
}

type browseAPIResponse struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next"`
}

func (r *browseAPIResponse) toSearchResponse() *SearchResponse {
	return &SearchResponse{
		Items:   r.ItemSummaries,
		Total:   r.Total,
		Offset:  r.Offset,
		Limit:   r.Limit,
		HasMore: r.Next != "",
	}
}

// SearchItems queries the Browse API item_summary/search endpoint.
func (c *Client) SearchItems(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	var apiResp browseAPIResponse
	if err := c.do(ctx, "search_items", http.MethodGet, c.buildSearchURL(req), nil, &apiResp); err != nil {
		return nil, err
	}
	return apiResp.toSearchResponse(), nil
}

// SearchItemsByImage searches for items that look like the given image.
func (c *Client) SearchItemsByImage(
	ctx context.Context,
	req ImageSearchRequest,
) (*SearchResponse, error) {
	payload := map[string]any{
		"image":  base64.StdEncoding.EncodeToString(req.Image),
		"limit":  clampLimit(req.Limit, defaultSearchLimit),
		"offset": req.Offset,
	}
	if req.CategoryIDs != "" {
		payload["category_ids"] = req.CategoryIDs
	}
	if req.Filter != "" {
		payload["filter"] = req.Filter
	}
	if req.Sort != "" {
		payload["sort"] = req.Sort
	}

	u := c.browseURL + "/item_summary/search_by_image"

	var apiResp browseAPIResponse
	if err := c.do(ctx, "search_items_by_image", http.MethodPost, u, payload, &apiResp); err != nil {
		return nil, err
	}
	return apiResp.toSearchResponse(), nil
}

// GetItem returns the details of a single item. fieldgroups is optional.
func (c *Client) GetItem(ctx context.Context, itemID, fieldgroups string) (*Item, error) {
	u := c.browseURL + "/item/" + url.PathEscape(itemID)
	if fieldgroups != "" {
		u += "?" + url.Values{"fieldgroups": {fieldgroups}}.Encode()
	}

	var item Item
	if err := c.do(ctx, "get_item", http.MethodGet, u, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemsByGroup returns all variations that belong to an item group.
func (c *Client) GetItemsByGroup(ctx context.Context, itemGroupID string) (*ItemGroup, error) {
	u := c.browseURL + "/item/get_items_by_item_group?" +
		url.Values{"item_group_id": {itemGroupID}}.Encode()

	var group ItemGroup
	if err := c.do(ctx, "get_items_by_item_group", http.MethodGet, u, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(req.Limit, defaultSearchLimit)))
	params.Set("offset", strconv.Itoa(req.Offset))

	if req.Query != "" {
		params.Set("q", req.Query)
	}
	if req.CategoryIDs != "" {
		params.Set("category_ids", req.CategoryIDs)
	}
	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}
	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	for k, v := range req.Params {
		params.Set(k, v)
	}

	return c.browseURL + "/item_summary/search?" + params.Encode()
}

// do resolves a token, snapshots the marketplace and performs one request.
func (c *Client) do(ctx context.Context, op, method, u string, body, dst any) error {
	marketplace := c.Marketplace()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	err = upstream.DoJSON(ctx, c.client, upstream.Call{
		Service: serviceName,
		Op:      op,
		Method:  method,
		URL:     u,
		Header: http.Header{
			"Authorization":           {"Bearer " + token},
			"X-Ebay-C-Marketplace-Id": {marketplace},
			"Content-Type":            {"application/json"},
		},
		Body: body,
	}, dst)
	if err != nil {
		return fmt.Errorf("eBay %s: %w", op, err)
	}
	return nil
}
