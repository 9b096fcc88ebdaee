package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// tcg-analytics operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("tcga-alerts", "tcga-alerts", []Rule{
		{
			Alert: "TcgaDown",
			Expr:  `absent(up{job="tcg-analytics"})`,
			For:   "2m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "TCG Analytics is down",
				"description": "The tcg-analytics job has been absent for more than 2 minutes.",
			},
		},
		{
			Alert: "TcgaHealthDown",
			Expr:  `tcga_health_up == 0`,
			For:   "2m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "TCG Analytics health check is failing",
				"description": "The health endpoint has been failing for more than 2 minutes.",
			},
		},
		{
			Alert: "TcgaHighErrorRate",
			Expr:  `sum(tcga:http_errors:rate5m) / sum(tcga:http_requests:rate5m) > 0.05`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "High HTTP error rate on TCG Analytics",
				"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
			},
		},
		{
			Alert: "TcgaJustTCGErrors",
			Expr:  `sum(tcga:upstream_errors:rate5m{service="justtcg"}) > 0.1`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "JustTCG calls are failing",
				"description": "JustTCG pricing calls have been failing at more than 0.1/s for 5 minutes. Card lookups return 500.",
			},
		},
		{
			Alert: "TcgaEnrichmentFailing",
			Expr:  `tcga:enrichment:rate5m{outcome="error"} / ignoring(outcome) sum(tcga:enrichment:rate5m) > 0.5`,
			For:   "15m",
			Labels: map[string]string{
				"severity": "info",
			},
			Annotations: map[string]string{
				"summary":     "eBay enrichment is mostly failing",
				"description": "More than half of card lookups are served without eBay data because the eBay call failed.",
			},
		},
	})
}
