package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UpstreamRate returns a timeseries panel showing outbound call rate per
// upstream service and operation.
func UpstreamRate() *timeseries.PanelBuilder {
	return series("Upstream Calls", "JustTCG and eBay calls per second", ThirdWidth, "reqps").
		WithTarget(PromQuery(`tcga:upstream_requests:rate5m`, "{{service}} {{operation}}", "A")).
		Legend(meanMaxLegend())
}

// UpstreamLatency returns a timeseries panel showing p95 latency per
// upstream service.
func UpstreamLatency() *timeseries.PanelBuilder {
	return series("Upstream Latency (p95)", "95th percentile outbound call duration", ThirdWidth, "s").
		WithTarget(PromQuery(
			Quantile(0.95, "tcga_upstream_request_duration_seconds", "service"),
			"{{service}}", "A",
		)).
		Thresholds(upstreamLatencyThresholds())
}

// UpstreamErrors returns a timeseries panel showing failed upstream calls
// by service and status. Transport failures carry status "error".
func UpstreamErrors() *timeseries.PanelBuilder {
	return series("Upstream Errors", "Non-2xx and transport failures per second", ThirdWidth, "reqps").
		WithTarget(PromQuery(`tcga:upstream_errors:rate5m`, "{{service}} {{status}}", "A"))
}
