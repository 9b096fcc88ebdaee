package cmd

import (
	"log/slog"

	"github.com/donaldgifford/tcg-analytics/internal/aggregate"
	"github.com/donaldgifford/tcg-analytics/internal/config"
	"github.com/donaldgifford/tcg-analytics/internal/ebay"
	"github.com/donaldgifford/tcg-analytics/internal/justtcg"
	"github.com/donaldgifford/tcg-analytics/internal/telemetry"
	"github.com/donaldgifford/tcg-analytics/pkg/logger"
)

// newAggregator wires both upstream clients from cfg. Construction errors
// are kept and reported on the requests that need the client.
func newAggregator(cfg *config.Config, log *slog.Logger) *aggregate.Aggregator {
	pricing := aggregate.Pricing(justtcg.NewClient(
		cfg.JustTCG.APIKey,
		justtcg.WithBaseURL(cfg.JustTCG.BaseURL),
		justtcg.WithHTTPClient(telemetry.HTTPClient(cfg.JustTCG.Timeout)),
	))
	if _, err := pricing(); err != nil {
		log.Warn("pricing lookups disabled", "error", err)
	}

	market := aggregate.Marketplace(newEbayClient(&cfg.Ebay))
	if _, err := market(); err != nil {
		log.Info("eBay enrichment disabled", "error", err)
	}

	return aggregate.New(pricing, market,
		aggregate.WithLogger(logger.Component(log, "aggregate")),
	)
}

func newEbayClient(cfg *config.EbayConfig) (*ebay.Client, error) {
	hc := telemetry.HTTPClient(cfg.Timeout)

	var tokens ebay.TokenProvider = ebay.StaticToken(cfg.AccessToken)
	if cfg.UseOAuth() {
		tokens = ebay.NewOAuthTokenProvider(cfg.AppID, cfg.CertID,
			ebay.WithTokenURL(cfg.TokenURL),
			ebay.WithHTTPClient(hc),
		)
	}

	return ebay.NewClient(tokens,
		ebay.WithBrowseURL(cfg.BrowseURL),
		ebay.WithCatalogURL(cfg.CatalogURL),
		ebay.WithMarketplace(cfg.Marketplace),
		ebay.WithBrowseHTTPClient(hc),
	)
}
