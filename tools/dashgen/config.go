package main

import "errors"

// KnownMetrics is the set of metric names exported by tcg-analytics plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"tcga_http_request_duration_seconds_bucket": true,
	"tcga_http_requests_total":                  true,

	// Health metrics.
	"tcga_health_up": true,

	// Upstream metrics.
	"tcga_upstream_requests_total":                  true,
	"tcga_upstream_request_duration_seconds_bucket": true,

	// Enrichment metrics.
	"tcga_enrichment_total": true,

	// Recording rules.
	"tcga:http_requests:rate5m":     true,
	"tcga:http_errors:rate5m":       true,
	"tcga:upstream_requests:rate5m": true,
	"tcga:upstream_errors:rate5m":   true,
	"tcga:enrichment:rate5m":        true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
