// Package justtcg provides a client for the JustTCG card pricing API.
package justtcg

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/tcg-analytics/internal/upstream"
)

const (
	defaultBaseURL = "https://api.justtcg.com/v1"
	defaultTimeout = 10 * time.Second

	serviceName = "justtcg"
)

// CardClient defines the pricing lookup used by the aggregator.
type CardClient interface {
	GetCardInfo(ctx context.Context, cardID string) (*CardResponse, error)
}

// Client implements CardClient against the JustTCG REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the HTTP
// client, whichever order the options are given in.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a JustTCG client. It fails immediately when apiKey is
// empty so misconfiguration surfaces before the first lookup.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf(
			"%w: justtcg API key is required (set justtcg.api_key or JUSTTCG_API_KEY)",
			upstream.ErrNotConfigured,
		)
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c, nil
}

// GetCardInfo looks up a card by its TCGPlayer ID. The ID is passed through
// as-is; JustTCG decides whether it is valid.
func (c *Client) GetCardInfo(ctx context.Context, cardID string) (*CardResponse, error) {
	params := url.Values{}
	params.Set("tcgplayerId", cardID)

	var resp CardResponse
	err := upstream.DoJSON(ctx, c.client, upstream.Call{
		Service: serviceName,
		Op:      "get_card",
		Method:  http.MethodGet,
		URL:     c.baseURL + "/cards?" + params.Encode(),
		Header: http.Header{
			"X-Api-Key":    {c.apiKey},
			"Content-Type": {"application/json"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("getting card %q: %w", cardID, err)
	}
	return &resp, nil
}
