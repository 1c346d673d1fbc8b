package main

import "errors"

// KnownMetrics is the set of metric names exported by ebay-listing-gateway
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"elg_http_request_duration_seconds_bucket": true,
	"elg_http_requests_total":                  true,

	// Health metrics.
	"elg_healthz_up": true,
	"elg_readyz_up":  true,

	// OAuth token metrics.
	"elg_ebay_token_refreshes_total": true,

	// eBay API metrics.
	"elg_ebay_api_calls_total":             true,
	"elg_ebay_api_duration_seconds_bucket": true,
	"elg_ebay_daily_usage":                 true,
	"elg_ebay_daily_limit_hits_total":      true,

	// Upstream quota sync metrics.
	"elg_ebay_upstream_limit":           true,
	"elg_ebay_upstream_remaining":       true,
	"elg_ebay_upstream_reset_timestamp": true,
	"elg_quota_syncs_total":             true,
	"elg_quota_alerts_total":            true,

	// Listing metrics.
	"elg_listing_fetches_total": true,
	"elg_listing_score_bucket":  true,

	// Recording rules.
	"elg:http_requests:rate5m":    true,
	"elg:http_errors:rate5m":      true,
	"elg:ebay_api_calls:rate5m":   true,
	"elg:ebay_api_errors:rate5m":  true,
	"elg:listing_fetches:rate5m":  true,
	"elg:listing_failures:rate5m": true,

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
