package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/tcg-analytics/internal/ebay"
	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// Summarize projects a search response onto MarketplaceData. Items whose
// price is missing or does not parse are dropped from both the listings and
// the summary. TotalResults is the upstream total, not the listing count.
// Statistics are computed on exact decimals and converted once at the end.
func Summarize(resp *ebay.SearchResponse) *domain.MarketplaceData {
	if resp == nil {
		return nil
	}

	data := &domain.MarketplaceData{TotalResults: resp.Total}

	var (
		sum    decimal.Decimal
		lo, hi decimal.Decimal
		n      int64
	)
	for i := range resp.Items {
		item := &resp.Items[i]
		price, ok := ebay.ParsePrice(item.Price)
		if !ok {
			continue
		}

		data.Listings = append(data.Listings, ebay.ToListing(item))

		if n == 0 || price.LessThan(lo) {
			lo = price
		}
		if n == 0 || price.GreaterThan(hi) {
			hi = price
		}
		sum = sum.Add(price)
		n++
	}

	if n > 0 {
		data.PriceSummary = &domain.PriceSummary{
			Min:     lo.InexactFloat64(),
			Max:     hi.InexactFloat64(),
			Average: sum.Div(decimal.NewFromInt(n)).InexactFloat64(),
		}
	}

	return data
}
