package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/tcg-analytics/internal/aggregate"
	"github.com/donaldgifford/tcg-analytics/internal/ebay"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		items        []ebay.ItemSummary
		total        int
		wantListings int
		wantSummary  bool
		wantMin      float64
		wantMax      float64
		wantAvg      float64
	}{
		{
			name:         "two prices",
			items:        priced("10.00", "20.00"),
			total:        2,
			wantListings: 2,
			wantSummary:  true,
			wantMin:      10,
			wantMax:      20,
			wantAvg:      15,
		},
		{
			name:         "unparseable prices are skipped",
			items:        priced("abc", "4.00", "", "NaN", "Inf", "8.00"),
			total:        6,
			wantListings: 2,
			wantSummary:  true,
			wantMin:      4,
			wantMax:      8,
			wantAvg:      6,
		},
		{
			name:         "missing price is skipped",
			items:        append(priced("3"), ebay.ItemSummary{Title: "no price"}),
			total:        2,
			wantListings: 1,
			wantSummary:  true,
			wantMin:      3,
			wantMax:      3,
			wantAvg:      3,
		},
		{
			name:         "whitespace is tolerated",
			items:        priced(" 1.50 ", "2.50"),
			total:        2,
			wantListings: 2,
			wantSummary:  true,
			wantMin:      1.5,
			wantMax:      2.5,
			wantAvg:      2,
		},
		{
			name:         "nothing parseable",
			items:        priced("free", "call"),
			total:        9,
			wantListings: 0,
		},
		{
			name: "no items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := aggregate.Summarize(&ebay.SearchResponse{Items: tt.items, Total: tt.total})
			require.NotNil(t, data)
			assert.Len(t, data.Listings, tt.wantListings)
			assert.Equal(t, tt.total, data.TotalResults)

			if !tt.wantSummary {
				assert.Nil(t, data.PriceSummary)
				return
			}

			require.NotNil(t, data.PriceSummary)
			assert.InDelta(t, tt.wantMin, data.PriceSummary.Min, 1e-9)
			assert.InDelta(t, tt.wantMax, data.PriceSummary.Max, 1e-9)
			assert.InDelta(t, tt.wantAvg, data.PriceSummary.Average, 1e-9)
		})
	}
}

func TestSummarize_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, aggregate.Summarize(nil))
}

func TestSummarize_EmptyWhenNothingUsable(t *testing.T) {
	t.Parallel()

	data := aggregate.Summarize(&ebay.SearchResponse{Items: priced("n/a")})
	assert.True(t, data.Empty())
}
