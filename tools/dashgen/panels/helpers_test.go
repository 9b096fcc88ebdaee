package panels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		metric   string
		matchers []string
		want     string
	}{
		{
			name:   "job only",
			metric: "tcga_health_up",
			want:   `tcga_health_up{job="tcg-analytics"}`,
		},
		{
			name:     "extra matchers",
			metric:   "tcga_upstream_requests_total",
			matchers: []string{`service="justtcg"`, `status!~"2.."`},
			want:     `tcga_upstream_requests_total{job="tcg-analytics",service="justtcg",status!~"2.."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Sel(tt.metric, tt.matchers...))
		})
	}
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		`histogram_quantile(0.95, sum(rate(tcga_upstream_request_duration_seconds_bucket{job="tcg-analytics"}[5m])) by (le, service))`,
		Quantile(0.95, "tcga_upstream_request_duration_seconds", "service"),
	)
	assert.Equal(t,
		`histogram_quantile(0.5, sum(rate(tcga_http_request_duration_seconds_bucket{job="tcg-analytics"}[5m])) by (le))`,
		Quantile(0.50, "tcga_http_request_duration_seconds"),
	)
}
