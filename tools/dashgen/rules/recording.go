package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("tcga-recording-rules", "tcga-recording", []Rule{
		{
			Record: "tcga:http_requests:rate5m",
			Expr:   `sum(rate(tcga_http_requests_total[5m])) by (path)`,
		},
		{
			Record: "tcga:http_errors:rate5m",
			Expr:   `sum(rate(tcga_http_requests_total{status=~"5.."}[5m])) by (path)`,
		},
		{
			Record: "tcga:upstream_requests:rate5m",
			Expr:   `sum(rate(tcga_upstream_requests_total[5m])) by (service, operation)`,
		},
		{
			Record: "tcga:upstream_errors:rate5m",
			Expr:   `sum(rate(tcga_upstream_requests_total{status!~"2.."}[5m])) by (service, status)`,
		},
		{
			Record: "tcga:enrichment:rate5m",
			Expr:   `sum(rate(tcga_enrichment_total[5m])) by (outcome)`,
		},
	})
}
