// Package aggregate merges JustTCG pricing with best-effort eBay listings.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/tcg-analytics/internal/ebay"
	"github.com/donaldgifford/tcg-analytics/internal/justtcg"
	"github.com/donaldgifford/tcg-analytics/internal/metrics"
	"github.com/donaldgifford/tcg-analytics/internal/upstream"
	"github.com/donaldgifford/tcg-analytics/pkg/logger"
	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
)

const (
	enrichmentLimit  = 10
	enrichmentSuffix = " trading card"

	tracerName = "github.com/donaldgifford/tcg-analytics/internal/aggregate"
)

// PricingSource returns the pricing client, or the error that prevented it
// from being built.
type PricingSource func() (justtcg.CardClient, error)

// MarketplaceSource returns the marketplace client, or the error that
// prevented it from being built.
type MarketplaceSource func() (ebay.EbayClient, error)

// Pricing returns a PricingSource that always yields c and err. Pass the
// results of justtcg.NewClient straight through.
func Pricing(c *justtcg.Client, err error) PricingSource {
	return func() (justtcg.CardClient, error) {
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Marketplace returns a MarketplaceSource that always yields c and err.
func Marketplace(c *ebay.Client, err error) MarketplaceSource {
	return func() (ebay.EbayClient, error) {
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Aggregator runs card lookups. It holds no mutable state and is safe for
// concurrent use.
type Aggregator struct {
	pricing PricingSource
	market  MarketplaceSource
	log     *slog.Logger
	tracer  trace.Tracer
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Aggregator) {
		a.tracer = tp.Tracer(tracerName)
	}
}

// New creates an Aggregator. A nil market source disables enrichment.
func New(pricing PricingSource, market MarketplaceSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		pricing: pricing,
		market:  market,
		log:     logger.Discard(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Lookup fetches pricing for cardID and attaches eBay listings under
// domain.MarketplaceDataKey when any were found. Only pricing failures are
// returned; errors wrapping upstream.ErrNotConfigured mean the pricing
// credential is missing.
func (a *Aggregator) Lookup(ctx context.Context, cardID string) (map[string]any, error) {
	ctx, span := a.tracer.Start(ctx, "aggregate.Lookup",
		trace.WithAttributes(attribute.String("card.id", cardID)),
	)
	defer span.End()

	if a.pricing == nil {
		err := fmt.Errorf("%w: no pricing source", upstream.ErrNotConfigured)
		recordError(span, err)
		return nil, err
	}

	pricing, err := a.pricing()
	if err == nil && pricing == nil {
		err = errors.New("pricing source returned no client")
	}
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	resp, err := pricing.GetCardInfo(ctx, cardID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	payload := resp.Raw

	name, ok := resp.Data.Name()
	if !ok {
		metrics.EnrichmentTotal.WithLabelValues(metrics.EnrichmentNoName).Inc()
		a.log.Debug("no card name in pricing response, skipping enrichment", "card_id", cardID)
		return payload, nil
	}

	data := a.enrich(ctx, cardID, name)
	if data.Empty() {
		return payload, nil
	}

	if payload == nil {
		payload = make(map[string]any, 1)
	}
	payload[domain.MarketplaceDataKey] = data
	span.SetAttributes(attribute.Int("ebay.listings", len(data.Listings)))

	return payload, nil
}

// enrich searches eBay for name. Every failure is absorbed here and reported
// as nil data.
func (a *Aggregator) enrich(ctx context.Context, cardID, name string) *domain.MarketplaceData {
	ctx, span := a.tracer.Start(ctx, "aggregate.enrich",
		trace.WithAttributes(attribute.String("card.name", name)),
	)
	defer span.End()

	market, err := a.marketplace()
	if upstream.IsNotConfigured(err) {
		a.outcome(span, metrics.EnrichmentNotConfigured)
		a.log.Debug("marketplace not configured, skipping enrichment",
			"card_id", cardID,
			"error", err,
		)
		return nil
	}

	var resp *ebay.SearchResponse
	if err == nil {
		resp, err = market.SearchItems(ctx, ebay.SearchRequest{
			Query:       name + enrichmentSuffix,
			CategoryIDs: ebay.CategoryTradingCards,
			Limit:       enrichmentLimit,
		})
	}
	if err != nil {
		span.RecordError(err)
		a.outcome(span, metrics.EnrichmentError)
		a.log.Warn("marketplace enrichment failed",
			"card_id", cardID,
			"card_name", name,
			"error", err,
		)
		return nil
	}

	data := Summarize(resp)
	if data.Empty() {
		a.outcome(span, metrics.EnrichmentEmpty)
		return nil
	}

	a.outcome(span, metrics.EnrichmentEnriched)
	return data
}

// Search runs a marketplace search and summarizes the results. Unlike
// enrichment, failures are returned to the caller.
func (a *Aggregator) Search(ctx context.Context, req ebay.SearchRequest) (*domain.MarketplaceData, error) {
	ctx, span := a.tracer.Start(ctx, "aggregate.Search",
		trace.WithAttributes(attribute.String("search.query", req.Query)),
	)
	defer span.End()

	market, err := a.marketplace()
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	resp, err := market.SearchItems(ctx, req)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	data := Summarize(resp)
	if data == nil {
		data = &domain.MarketplaceData{}
	}
	if data.Listings == nil {
		data.Listings = []domain.Listing{}
	}
	return data, nil
}

func (a *Aggregator) marketplace() (ebay.EbayClient, error) {
	if a.market == nil {
		return nil, fmt.Errorf("%w: no marketplace source", upstream.ErrNotConfigured)
	}
	c, err := a.market()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("marketplace source returned no client")
	}
	return c, nil
}

func (a *Aggregator) outcome(span trace.Span, outcome string) {
	metrics.EnrichmentTotal.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.String("enrichment.outcome", outcome))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
