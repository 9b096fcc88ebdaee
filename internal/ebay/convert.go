package ebay

import (
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

// ToListings converts eBay API item summaries into domain listings.
func ToListings(items []ItemSummary) []domain.Listing {
	listings := make([]domain.Listing, 0, len(items))
	for i := range items {
		listings = append(listings, ToListing(&items[i]))
	}
	return listings
}

// ToListing projects one item summary onto the fields the gateway returns.
func ToListing(item *ItemSummary) domain.Listing {
	l := domain.Listing{
		Title:     item.Title,
		Condition: item.Condition,
		ItemURL:   item.ItemWebURL,
	}

	if item.Price != nil {
		l.Price = item.Price.Value
		l.Currency = item.Price.Currency
	}

	if item.Seller != nil {
		l.Seller = item.Seller.Username
	}

	return l
}

// ParsePrice returns the exact value of an item price. Missing, malformed
// and non-finite values report false.
func ParsePrice(p *ItemPrice) (decimal.Decimal, bool) {
	if p == nil {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(p.Value))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
