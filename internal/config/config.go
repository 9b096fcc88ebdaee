// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the matching config value is empty.
const (
	EnvJustTCGAPIKey     = "JUSTTCG_API_KEY"
	EnvEbayAccessToken   = "EBAY_ACCESS_TOKEN"
	EnvEbayAppID         = "EBAY_APP_ID"
	EnvEbayCertID        = "EBAY_CERT_ID"
	EnvEbayMarketplaceID = "EBAY_MARKETPLACE_ID"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	JustTCG   JustTCGConfig   `yaml:"justtcg"`
	Ebay      EbayConfig      `yaml:"ebay"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// JustTCGConfig defines JustTCG pricing API settings.
type JustTCGConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// EbayConfig defines eBay API settings. Either AccessToken or the
// AppID/CertID pair authenticates; neither being set disables enrichment.
type EbayConfig struct {
	AccessToken string        `yaml:"access_token"`
	AppID       string        `yaml:"app_id"`
	CertID      string        `yaml:"cert_id"`
	TokenURL    string        `yaml:"token_url"`
	BrowseURL   string        `yaml:"browse_url"`
	CatalogURL  string        `yaml:"catalog_url"`
	Marketplace string        `yaml:"marketplace"`
	Timeout     time.Duration `yaml:"timeout"`
}

// UseOAuth reports whether tokens should come from the client credentials
// flow rather than a static access token.
func (e *EbayConfig) UseOAuth() bool {
	return e.AccessToken == "" && e.AppID != "" && e.CertID != ""
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TelemetryConfig defines OpenTelemetry trace export settings.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP gRPC host:port
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. An empty path skips the file and yields the
// defaults plus environment fallbacks.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables in the YAML content.
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnv fills empty credentials from the environment. Explicit config
// values win.
func applyEnv(cfg *Config) {
	setFromEnv(&cfg.JustTCG.APIKey, EnvJustTCGAPIKey)
	setFromEnv(&cfg.Ebay.AccessToken, EnvEbayAccessToken)
	setFromEnv(&cfg.Ebay.AppID, EnvEbayAppID)
	setFromEnv(&cfg.Ebay.CertID, EnvEbayCertID)
	setFromEnv(&cfg.Ebay.Marketplace, EnvEbayMarketplaceID)
}

func setFromEnv(dst *string, key string) {
	if *dst != "" {
		return
	}
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyJustTCGDefaults(&cfg.JustTCG)
	applyEbayDefaults(&cfg.Ebay)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8000
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyJustTCGDefaults(j *JustTCGConfig) {
	if j.BaseURL == "" {
		j.BaseURL = "https://api.justtcg.com/v1"
	}
	if j.Timeout == 0 {
		j.Timeout = 10 * time.Second
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1"
	}
	if e.CatalogURL == "" {
		e.CatalogURL = "https://api.ebay.com/commerce/catalog/v1_beta"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.Timeout == 0 {
		e.Timeout = 10 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.ServiceName == "" {
		t.ServiceName = "tcg-analytics"
	}
}

// validate checks structural settings only. Missing API credentials are
// reported per request, not at startup.
func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	errs = append(errs,
		validateURL("justtcg.base_url", cfg.JustTCG.BaseURL),
		validateURL("ebay.token_url", cfg.Ebay.TokenURL),
		validateURL("ebay.browse_url", cfg.Ebay.BrowseURL),
		validateURL("ebay.catalog_url", cfg.Ebay.CatalogURL),
	)

	if cfg.JustTCG.Timeout < 0 {
		errs = append(errs, fmt.Errorf("justtcg.timeout must not be negative"))
	}
	if cfg.Ebay.Timeout < 0 {
		errs = append(errs, fmt.Errorf("ebay.timeout must not be negative"))
	}

	if (cfg.Ebay.AppID == "") != (cfg.Ebay.CertID == "") {
		errs = append(errs, fmt.Errorf("ebay.app_id and ebay.cert_id must be set together"))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"telemetry.sample_ratio must be between 0 and 1 (got %g)",
			cfg.Telemetry.SampleRatio,
		))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL (got %q)", field, raw)
	}
	return nil
}
