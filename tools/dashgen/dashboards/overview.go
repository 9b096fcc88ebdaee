// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/tcg-analytics/tools/dashgen/panels"
)

// BuildOverview constructs the TCG Analytics overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("TCG Analytics Overview").
		Uid("tcga-overview").
		Tags([]string{"tcga", "tcg-analytics"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthStat()).
		WithPanel(panels.EnrichmentHitGauge()).
		WithPanel(panels.UpstreamErrorStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Upstreams").
		WithPanel(panels.UpstreamRate()).
		WithPanel(panels.UpstreamLatency()).
		WithPanel(panels.UpstreamErrors()))

	b.WithRow(dashboard.NewRowBuilder("eBay Enrichment").
		WithPanel(panels.EnrichmentOutcomes()).
		WithPanel(panels.EnrichmentBreakdown()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
