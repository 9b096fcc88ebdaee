package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EnrichmentOutcomes returns a timeseries panel showing card lookups per
// enrichment outcome.
func EnrichmentOutcomes() *timeseries.PanelBuilder {
	return series("Enrichment Outcomes", "Card lookups per second by eBay enrichment outcome", HalfWidth, "reqps").
		WithTarget(PromQuery(`tcga:enrichment:rate5m`, "{{outcome}}", "A")).
		Legend(meanMaxLegend())
}

// EnrichmentBreakdown returns a bar gauge panel with outcome totals over the
// past 24 hours.
func EnrichmentBreakdown() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Enrichment Breakdown (24h)").
		Description("enriched, empty, no_name, not_configured and error counts").
		Datasource(DSRef()).
		Height(SeriesHeight).
		Span(HalfWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("tcga_enrichment_total")+`[24h])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(thresholds("green")).
		ColorScheme(paletteColors())
}
