package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate per
// route.
func RequestRate() *timeseries.PanelBuilder {
	return series("Request Rate", "HTTP requests per second by route", ThirdWidth, "reqps").
		WithTarget(PromQuery(`tcga:http_requests:rate5m`, "{{path}}", "A")).
		Legend(meanMaxLegend())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95 and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	const h = "tcga_http_request_duration_seconds"
	return series("Latency Percentiles", "HTTP request duration percentiles", ThirdWidth, "s").
		WithTarget(PromQuery(Quantile(0.50, h), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, h), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, h), "p99", "C")).
		Legend(meanMaxLegend())
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return series("Error Rate %", "HTTP 5xx error rate as percentage of total requests", ThirdWidth, "percent").
		WithTarget(PromQuery(
			`sum(tcga:http_errors:rate5m) / sum(tcga:http_requests:rate5m) * 100`,
			"error %", "A",
		)).
		Thresholds(errorThresholds(1, 5)).
		ColorScheme(thresholdColors())
}
