// Package domain defines the response types shared by the tcg-analytics
// server, its API client and the CLI.
package domain

// Listing is a normalized projection of one marketplace search result.
type Listing struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Condition string `json:"condition"`
	ItemURL   string `json:"itemUrl"`
	Seller    string `json:"seller"`
}

// PriceSummary holds statistics over the parseable listing prices.
type PriceSummary struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// MarketplaceData is the enrichment attached to a card lookup under
// MarketplaceDataKey.
type MarketplaceData struct {
	Listings     []Listing     `json:"listings"`
	PriceSummary *PriceSummary `json:"priceSummary,omitempty"`
	TotalResults int           `json:"totalResults"`
}

// MarketplaceDataKey is the field added to a card lookup response.
const MarketplaceDataKey = "ebay_data"

// Empty reports whether d carries nothing worth attaching.
func (d *MarketplaceData) Empty() bool {
	return d == nil || (len(d.Listings) == 0 && d.PriceSummary == nil && d.TotalResults == 0)
}

// HealthStatus is the body of the health check endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
