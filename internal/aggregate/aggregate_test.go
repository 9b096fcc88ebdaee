package aggregate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/tcg-analytics/internal/aggregate"
	"github.com/donaldgifford/tcg-analytics/internal/ebay"
	ebayMocks "github.com/donaldgifford/tcg-analytics/internal/ebay/mocks"
	"github.com/donaldgifford/tcg-analytics/internal/justtcg"
	justtcgMocks "github.com/donaldgifford/tcg-analytics/internal/justtcg/mocks"
	"github.com/donaldgifford/tcg-analytics/internal/metrics"
	"github.com/donaldgifford/tcg-analytics/internal/upstream"
	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

func cardResponse(t *testing.T, body string) *justtcg.CardResponse {
	t.Helper()
	var resp justtcg.CardResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func pricingFrom(c justtcg.CardClient) aggregate.PricingSource {
	return func() (justtcg.CardClient, error) { return c, nil }
}

func marketFrom(c ebay.EbayClient) aggregate.MarketplaceSource {
	return func() (ebay.EbayClient, error) { return c, nil }
}

func notConfiguredMarket() aggregate.MarketplaceSource {
	return func() (ebay.EbayClient, error) {
		return nil, fmt.Errorf("%w: ebay access token is required", upstream.ErrNotConfigured)
	}
}

func priced(values ...string) []ebay.ItemSummary {
	items := make([]ebay.ItemSummary, 0, len(values))
	for i, v := range values {
		items = append(items, ebay.ItemSummary{
			ItemID:     fmt.Sprintf("v1|%d|0", i),
			Title:      fmt.Sprintf("Listing %d", i),
			Price:      &ebay.ItemPrice{Value: v, Currency: "USD"},
			Condition:  "Ungraded",
			ItemWebURL: fmt.Sprintf("https://www.ebay.com/itm/%d", i),
			Seller:     &ebay.ItemSeller{Username: "seller"},
		})
	}
	return items
}

func marketData(t *testing.T, payload map[string]any) *domain.MarketplaceData {
	t.Helper()
	raw, ok := payload[domain.MarketplaceDataKey]
	require.True(t, ok, "expected %s in payload", domain.MarketplaceDataKey)
	data, ok := raw.(*domain.MarketplaceData)
	require.True(t, ok)
	return data
}

func TestLookup_EnrichesListData(t *testing.T) {
	t.Parallel()

	pricing := justtcgMocks.NewMockCardClient(t)
	market := ebayMocks.NewMockEbayClient(t)

	pricing.EXPECT().
		GetCardInfo(mock.Anything, "12345").
		Return(cardResponse(t, `{"data":[{"name":"Charizard"}]}`), nil).
		Once()

	market.EXPECT().
		SearchItems(mock.Anything, ebay.SearchRequest{
			Query:       "Charizard trading card",
			CategoryIDs: "2536",
			Limit:       10,
		}).
		Return(&ebay.SearchResponse{Items: priced("10.00", "20.00"), Total: 2}, nil).
		Once()

	agg := aggregate.New(pricingFrom(pricing), marketFrom(market))

	payload, err := agg.Lookup(context.Background(), "12345")
	require.NoError(t, err)

	data := marketData(t, payload)
	require.NotNil(t, data.PriceSummary)
	assert.InDelta(t, 10.0, data.PriceSummary.Min, 1e-9)
	assert.InDelta(t, 20.0, data.PriceSummary.Max, 1e-9)
	assert.InDelta(t, 15.0, data.PriceSummary.Average, 1e-9)
	assert.Len(t, data.Listings, 2)
	assert.Equal(t, 2, data.TotalResults)
	assert.Equal(t, "10.00", data.Listings[0].Price)
	assert.Equal(t, "seller", data.Listings[0].Seller)

	// The pricing document is passed through alongside the enrichment.
	assert.Contains(t, payload, "data")
}

func TestLookup_SingleObjectName(t *testing.T) {
	t.Parallel()

	pricing := justtcgMocks.NewMockCardClient(t)
	market := ebayMocks.NewMockEbayClient(t)

	pricing.EXPECT().
		GetCardInfo(mock.Anything, "999").
		Return(cardResponse(t, `{"data":{"name":"Pikachu"}}`), nil)

	market.EXPECT().
		SearchItems(mock.Anything, mock.MatchedBy(func(req ebay.SearchRequest) bool {
			return req.Query == "Pikachu trading card"
		})).
		Return(&ebay.SearchResponse{Items: priced("5.5"), Total: 40}, nil)

	agg := aggregate.New(pricingFrom(pricing), marketFrom(market))

	payload, err := agg.Lookup(context.Background(), "999")
	require.NoError(t, err)

	data := marketData(t, payload)
	assert.Equal(t, 40, data.TotalResults)
	require.NotNil(t, data.PriceSummary)
	assert.InDelta(t, 5.5, data.PriceSummary.Average, 1e-9)
}

func TestLookup_NameSurvivesMistypedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantName string
	}{
		{
			name:     "numeric tcgplayerId",
			body:     `{"data":[{"name":"Charizard","tcgplayerId":12345}]}`,
			wantName: "Charizard",
		},
		{
			name:     "numeric id on object",
			body:     `{"data":{"name":"Pikachu","id":42}}`,
			wantName: "Pikachu",
		},
		{
			name:     "malformed second element",
			body:     `{"data":[{"name":"Charizard"},{"name":"x","set":7}]}`,
			wantName: "Charizard",
		},
		{
			name:     "scalar second element",
			body:     `{"data":[{"name":"Charizard"},"oops"]}`,
			wantName: "Charizard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pricing := justtcgMocks.NewMockCardClient(t)
			market := ebayMocks.NewMockEbayClient(t)

			pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(cardResponse(t, tt.body), nil)
			market.EXPECT().
				SearchItems(mock.Anything, mock.MatchedBy(func(req ebay.SearchRequest) bool {
					return req.Query == tt.wantName+" trading card"
				})).
				Return(&ebay.SearchResponse{Items: priced("3.00"), Total: 1}, nil).
				Once()

			agg := aggregate.New(pricingFrom(pricing), marketFrom(market))

			payload, err := agg.Lookup(context.Background(), "1")
			require.NoError(t, err)

			data := marketData(t, payload)
			assert.Len(t, data.Listings, 1)
			assert.Equal(t, 1, data.TotalResults)
		})
	}
}

func TestLookup_NoNameLeavesPayloadUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `{"data":[]}`},
		{name: "missing data", body: `{"meta":{"total":0}}`},
		{name: "data is a string", body: `{"data":"nope"}`},
		{name: "null data", body: `{"data":null}`},
		{name: "empty name", body: `{"data":{"name":""}}`},
		{name: "first element without name", body: `{"data":[{"id":"x"},{"name":"Mew"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pricing := justtcgMocks.NewMockCardClient(t)
			// No expectations: any call fails the test.
			market := ebayMocks.NewMockEbayClient(t)

			resp := cardResponse(t, tt.body)
			pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(resp, nil)

			agg := aggregate.New(pricingFrom(pricing), marketFrom(market))

			payload, err := agg.Lookup(context.Background(), "1")
			require.NoError(t, err)
			assert.NotContains(t, payload, domain.MarketplaceDataKey)

			got, err := json.Marshal(payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(got))
		})
	}
}

func TestLookup_PreservesNumbers(t *testing.T) {
	t.Parallel()

	pricing := justtcgMocks.NewMockCardClient(t)
	body := `{"data":[{"id":"a"}],"meta":{"price":12.50,"big":12345678901234567890}}`
	pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(cardResponse(t, body), nil)

	agg := aggregate.New(pricingFrom(pricing), nil)

	payload, err := agg.Lookup(context.Background(), "1")
	require.NoError(t, err)

	got, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(got), "12.50")
	assert.Contains(t, string(got), "12345678901234567890")
}

func TestLookup_MarketplaceFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		market func(t *testing.T) aggregate.MarketplaceSource
	}{
		{
			name: "upstream request error",
			market: func(t *testing.T) aggregate.MarketplaceSource {
				m := ebayMocks.NewMockEbayClient(t)
				m.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(nil, &upstream.RequestError{
					Service:    "ebay",
					Op:         "search_items",
					StatusCode: 500,
					Body:       "boom",
				})
				return marketFrom(m)
			},
		},
		{
			name: "transport error",
			market: func(t *testing.T) aggregate.MarketplaceSource {
				m := ebayMocks.NewMockEbayClient(t)
				m.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
				return marketFrom(m)
			},
		},
		{
			name: "not configured",
			market: func(_ *testing.T) aggregate.MarketplaceSource {
				return notConfiguredMarket()
			},
		},
		{
			name: "nil source",
			market: func(_ *testing.T) aggregate.MarketplaceSource {
				return nil
			},
		},
		{
			name: "no listings",
			market: func(t *testing.T) aggregate.MarketplaceSource {
				m := ebayMocks.NewMockEbayClient(t)
				m.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(&ebay.SearchResponse{}, nil)
				return marketFrom(m)
			},
		},
	}

	const body = `{"data":[{"name":"Charizard","set":"Base Set"}]}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pricing := justtcgMocks.NewMockCardClient(t)
			pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(cardResponse(t, body), nil)

			agg := aggregate.New(pricingFrom(pricing), tt.market(t))

			payload, err := agg.Lookup(context.Background(), "1")
			require.NoError(t, err)
			assert.NotContains(t, payload, domain.MarketplaceDataKey)

			got, err := json.Marshal(payload)
			require.NoError(t, err)
			assert.JSONEq(t, body, string(got))
		})
	}
}

func TestLookup_TotalOnlyIsAttached(t *testing.T) {
	t.Parallel()

	pricing := justtcgMocks.NewMockCardClient(t)
	market := ebayMocks.NewMockEbayClient(t)

	pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(cardResponse(t, `{"data":{"name":"Mew"}}`), nil)
	market.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(&ebay.SearchResponse{
		Items: []ebay.ItemSummary{{Title: "no price"}},
		Total: 7,
	}, nil)

	agg := aggregate.New(pricingFrom(pricing), marketFrom(market))

	payload, err := agg.Lookup(context.Background(), "1")
	require.NoError(t, err)

	data := marketData(t, payload)
	assert.Empty(t, data.Listings)
	assert.Nil(t, data.PriceSummary)
	assert.Equal(t, 7, data.TotalResults)
}

func TestLookup_PricingErrors(t *testing.T) {
	t.Parallel()

	configErr := fmt.Errorf("%w: justtcg API key is required", upstream.ErrNotConfigured)

	tests := []struct {
		name             string
		pricing          func(t *testing.T) aggregate.PricingSource
		wantNotConfigure bool
	}{
		{
			name: "missing credential",
			pricing: func(_ *testing.T) aggregate.PricingSource {
				return aggregate.Pricing(nil, configErr)
			},
			wantNotConfigure: true,
		},
		{
			name: "nil source",
			pricing: func(_ *testing.T) aggregate.PricingSource {
				return nil
			},
			wantNotConfigure: true,
		},
		{
			name: "upstream failure",
			pricing: func(t *testing.T) aggregate.PricingSource {
				m := justtcgMocks.NewMockCardClient(t)
				m.EXPECT().GetCardInfo(mock.Anything, "1").Return(nil, &upstream.RequestError{
					Service:    "justtcg",
					Op:         "get_card",
					StatusCode: 503,
					Body:       "unavailable",
				})
				return pricingFrom(m)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// No expectations: enrichment must not run.
			market := ebayMocks.NewMockEbayClient(t)
			agg := aggregate.New(tt.pricing(t), marketFrom(market))

			payload, err := agg.Lookup(context.Background(), "1")
			require.Error(t, err)
			assert.Nil(t, payload)
			assert.Equal(t, tt.wantNotConfigure, upstream.IsNotConfigured(err))
		})
	}
}

// Not parallel: asserts on process-wide counters and runs before the
// parallel tests resume.
func TestLookup_EnrichmentOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		market    func(t *testing.T) aggregate.MarketplaceSource
		outcome   string
		wantLevel string
	}{
		{
			name:      "not configured logs at debug",
			body:      `{"data":{"name":"Mew"}}`,
			market:    func(_ *testing.T) aggregate.MarketplaceSource { return notConfiguredMarket() },
			outcome:   metrics.EnrichmentNotConfigured,
			wantLevel: "level=DEBUG",
		},
		{
			name: "upstream error logs at warn",
			body: `{"data":{"name":"Mew"}}`,
			market: func(t *testing.T) aggregate.MarketplaceSource {
				m := ebayMocks.NewMockEbayClient(t)
				m.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
				return marketFrom(m)
			},
			outcome:   metrics.EnrichmentError,
			wantLevel: "level=WARN",
		},
		{
			name: "enriched",
			body: `{"data":{"name":"Mew"}}`,
			market: func(t *testing.T) aggregate.MarketplaceSource {
				m := ebayMocks.NewMockEbayClient(t)
				m.EXPECT().SearchItems(mock.Anything, mock.Anything).
					Return(&ebay.SearchResponse{Items: priced("1.00"), Total: 1}, nil)
				return marketFrom(m)
			},
			outcome: metrics.EnrichmentEnriched,
		},
		{
			name:    "no name",
			body:    `{"data":[]}`,
			market:  func(_ *testing.T) aggregate.MarketplaceSource { return nil },
			outcome: metrics.EnrichmentNoName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing := justtcgMocks.NewMockCardClient(t)
			pricing.EXPECT().GetCardInfo(mock.Anything, "1").Return(cardResponse(t, tt.body), nil)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			counter := metrics.EnrichmentTotal.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)

			agg := aggregate.New(pricingFrom(pricing), tt.market(t), aggregate.WithLogger(logger))
			_, err := agg.Lookup(context.Background(), "1")
			require.NoError(t, err)

			assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0)
			if tt.wantLevel != "" {
				assert.Contains(t, buf.String(), tt.wantLevel)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("returns summarized listings", func(t *testing.T) {
		t.Parallel()

		market := ebayMocks.NewMockEbayClient(t)
		req := ebay.SearchRequest{Query: "Black Lotus", Limit: 5}
		market.EXPECT().SearchItems(mock.Anything, req).
			Return(&ebay.SearchResponse{Items: priced("100", "300"), Total: 12}, nil)

		agg := aggregate.New(nil, marketFrom(market))
		data, err := agg.Search(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, data.Listings, 2)
		assert.Equal(t, 12, data.TotalResults)
		require.NotNil(t, data.PriceSummary)
		assert.InDelta(t, 200.0, data.PriceSummary.Average, 1e-9)
	})

	t.Run("empty result has empty listings", func(t *testing.T) {
		t.Parallel()

		market := ebayMocks.NewMockEbayClient(t)
		market.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(&ebay.SearchResponse{}, nil)

		agg := aggregate.New(nil, marketFrom(market))
		data, err := agg.Search(context.Background(), ebay.SearchRequest{Query: "x"})
		require.NoError(t, err)
		assert.NotNil(t, data.Listings)
		assert.Empty(t, data.Listings)
	})

	t.Run("not configured is returned", func(t *testing.T) {
		t.Parallel()

		agg := aggregate.New(nil, notConfiguredMarket())
		_, err := agg.Search(context.Background(), ebay.SearchRequest{Query: "x"})
		require.Error(t, err)
		assert.True(t, upstream.IsNotConfigured(err))
	})

	t.Run("upstream error is returned", func(t *testing.T) {
		t.Parallel()

		market := ebayMocks.NewMockEbayClient(t)
		market.EXPECT().SearchItems(mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		agg := aggregate.New(nil, marketFrom(market))
		_, err := agg.Search(context.Background(), ebay.SearchRequest{Query: "x"})
		require.Error(t, err)
		assert.False(t, upstream.IsNotConfigured(err))
	})
}
