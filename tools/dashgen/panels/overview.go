package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthStat returns a stat panel showing the health check status.
func HealthStat() *stat.PanelBuilder {
	return statPanel("Health", "Health check status (1 = ok, 0 = failing)").
		WithTarget(PromQuery(Sel("tcga_health_up"), "", "A")).
		Thresholds(healthThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// EnrichmentHitGauge returns a gauge panel showing the share of card lookups
// that came back with eBay data attached.
func EnrichmentHitGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Enrichment Hit %").
		Description("Card lookups enriched with eBay data, last 1h").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("tcga_enrichment_total", `outcome="enriched"`)+`[1h]))`+
				` / sum(increase(`+Sel("tcga_enrichment_total")+`[1h])) * 100`,
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(hitRateThresholds()).
		ColorScheme(thresholdColors())
}

// UpstreamErrorStat returns a stat panel counting failed upstream calls over
// the past hour.
func UpstreamErrorStat() *stat.PanelBuilder {
	return statPanel("Upstream Errors (1h)", "JustTCG and eBay calls that failed or returned 4xx/5xx").
		WithTarget(PromQuery(
			`sum(increase(`+Sel("tcga_upstream_requests_total", `status!~"2.."`)+`[1h]))`,
			"", "A",
		)).
		Thresholds(errorThresholds(1, 10)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return statPanel("Uptime", "Time since process start").
		WithTarget(PromQuery(`time() - `+Sel("process_start_time_seconds"), "", "A")).
		Unit("s").
		Thresholds(thresholds("green")).
		GraphMode(common.BigValueGraphModeNone)
}
