// Package panels provides Grafana dashboard panel builders for
// tcg-analytics metrics.
package panels

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus scrape job the gateway runs under.
const Job = "tcg-analytics"

// Panel sizes on the 24-column grid: four stats to a row, then two or three
// graphs.
const (
	StatWidth    = 6
	StatHeight   = 4
	SeriesHeight = 8
	HalfWidth    = 12
	ThirdWidth   = 8
)

// Sel renders a selector for a raw tcga series scoped to the gateway's job.
// Recorded series already carry only the aggregation labels and are queried
// by name.
func Sel(metric string, matchers ...string) string {
	all := append([]string{`job="` + Job + `"`}, matchers...)
	return metric + "{" + strings.Join(all, ",") + "}"
}

// Quantile renders the q-th quantile of a tcga duration histogram over 5m,
// grouped by the given labels.
func Quantile(q float64, histogram string, by ...string) string {
	return fmt.Sprintf("histogram_quantile(%g, sum(rate(%s[5m])) by (%s))",
		q, Sel(histogram+"_bucket"), strings.Join(append([]string{"le"}, by...), ", "))
}

// DSRef points at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus query target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

func thresholds(base string, steps ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(append([]dashboard.Threshold{{Color: base}}, steps...))
}

func step(v float64, color string) dashboard.Threshold {
	return dashboard.Threshold{Value: cog.ToPtr(v), Color: color}
}

// tcga_health_up is 0 or 1.
func healthThresholds() cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("red", step(1, "green"))
}

// Share of lookups enriched, in percent. A missing eBay credential pins it
// at zero.
func hitRateThresholds() cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("red", step(50, "yellow"), step(80, "green"))
}

// errorThresholds turns yellow at warn and red at crit.
func errorThresholds(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("green", step(warn, "yellow"), step(crit, "red"))
}

// Upstream clients time out at 10s by default.
func upstreamLatencyThresholds() cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("green", step(2, "yellow"), step(5, "red"))
}

func thresholdColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)
}

func paletteColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)
}

func meanMaxLegend() *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs([]string{"mean", "max"})
}

// statPanel returns a stat sized for the overview row.
func statPanel(title, description string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		ColorScheme(thresholdColors())
}

// series returns a line graph with the styling every graph on the overview
// shares.
func series(title, description string, width uint32, unit string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(SeriesHeight).
		Span(width).
		Unit(unit).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		ColorScheme(paletteColors()).
		DrawStyle(common.GraphDrawStyleLine)
}
