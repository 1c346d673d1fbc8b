// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is loaded into the process environment before the config file
// is read. A missing file is ignored and existing variables are never
// overwritten.
var DotEnvFile = ".env"

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Ebay          EbayConfig          `yaml:"ebay"`
	CORS          CORSConfig          `yaml:"cors"`
	RateLimit     InboundRateLimit    `yaml:"rate_limit"`
	Extractor     ExtractorConfig     `yaml:"extractor"`
	QuotaSync     QuotaSyncConfig     `yaml:"quota_sync"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
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
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EbayConfig defines eBay API settings.
type EbayConfig struct {
	AppID        string          `yaml:"app_id"`
	ClientSecret string          `yaml:"client_secret"`
	TokenURL     string          `yaml:"token_url"`
	Scope        string          `yaml:"scope"`
	SearchURL    string          `yaml:"search_url"`
	ItemURL      string          `yaml:"item_url"`
	CategoryURL  string          `yaml:"category_url"`
	AnalyticsURL string          `yaml:"analytics_url"`
	Marketplace  string          `yaml:"marketplace"`
	Timeout      time.Duration   `yaml:"timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound eBay API rate limiting settings. A zero
// DailyLimit disables the limiter.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// Enabled reports whether outbound calls should be rate limited.
func (r *RateLimitConfig) Enabled() bool {
	return r.DailyLimit > 0
}

// CORSConfig defines which browser origins may call the gateway.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// InboundRateLimit caps requests per client IP.
type InboundRateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// ExtractorConfig defines listing page fetch settings.
type ExtractorConfig struct {
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	AllowedHosts []string      `yaml:"allowed_hosts"`
}

// QuotaSyncConfig defines the background job that mirrors eBay's reported
// quota into the outbound rate limiter and metrics.
type QuotaSyncConfig struct {
	Disabled  bool          `yaml:"disabled"`
	Interval  time.Duration `yaml:"interval"`
	WarnRatio float64       `yaml:"warn_ratio"` // alert when remaining/limit drops to this
}

// NotificationsConfig defines where low-quota alerts are sent. Alerts are
// only logged when no webhook is set.
type NotificationsConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. An empty path yields the defaults plus
// environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

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

	applyDefaults(cfg)

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyEbayDefaults(&cfg.Ebay)
	applyCORSDefaults(&cfg.CORS)
	applyInboundRateLimitDefaults(&cfg.RateLimit)
	applyExtractorDefaults(&cfg.Extractor)
	applyQuotaSyncDefaults(&cfg.QuotaSync)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 5000
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.Scope == "" {
		e.Scope = "https://api.ebay.com/oauth/api_scope"
	}
	if e.SearchURL == "" {
		e.SearchURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	if e.ItemURL == "" {
		e.ItemURL = "https://api.ebay.com/buy/browse/v1/item/"
	}
	if e.CategoryURL == "" {
		e.CategoryURL = "https://api.ebay.com/commerce/taxonomy/v1/category_tree/0/get_category_suggestions"
	}
	if e.AnalyticsURL == "" {
		e.AnalyticsURL = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.Timeout == 0 {
		e.Timeout = 10 * time.Second
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyCORSDefaults(c *CORSConfig) {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"https://chat.openai.com"}
	}
}

func applyInboundRateLimitDefaults(r *InboundRateLimit) {
	if r.RequestsPerMinute == 0 {
		r.RequestsPerMinute = 100
	}
	if r.Burst == 0 {
		r.Burst = 20
	}
}

func applyExtractorDefaults(x *ExtractorConfig) {
	if x.UserAgent == "" {
		x.UserAgent = "Mozilla/5.0"
	}
	if x.Timeout == 0 {
		x.Timeout = 10 * time.Second
	}
	if x.AllowedHosts == nil {
		x.AllowedHosts = []string{
			"ebay.com",
			"ebay.co.uk",
			"ebay.ca",
			"ebay.com.au",
			"ebay.de",
			"ebay.fr",
			"ebay.it",
			"ebay.es",
		}
	}
}

func applyQuotaSyncDefaults(q *QuotaSyncConfig) {
	if q.Interval == 0 {
		q.Interval = 15 * time.Minute
	}
	if q.WarnRatio == 0 {
		q.WarnRatio = 0.1
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

// applyEnvOverrides lets the conventional deployment variables win over the
// file.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("EBAY_APP_ID"); v != "" {
		cfg.Ebay.AppID = v
	}
	if v := os.Getenv("EBAY_CLIENT_SECRET"); v != "" {
		cfg.Ebay.ClientSecret = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Notifications.DiscordWebhookURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	for name, raw := range map[string]string{
		"ebay.token_url":     cfg.Ebay.TokenURL,
		"ebay.search_url":    cfg.Ebay.SearchURL,
		"ebay.item_url":      cfg.Ebay.ItemURL,
		"ebay.category_url":  cfg.Ebay.CategoryURL,
		"ebay.analytics_url": cfg.Ebay.AnalyticsURL,
	} {
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if cfg.Ebay.Timeout < 0 {
		errs = append(errs, errors.New("ebay.timeout must not be negative"))
	}
	if cfg.Ebay.RateLimit.PerSecond < 0 {
		errs = append(errs, errors.New("ebay.rate_limit.per_second must not be negative"))
	}
	if cfg.Ebay.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("ebay.rate_limit.burst must not be negative"))
	}
	if cfg.Ebay.RateLimit.DailyLimit < 0 {
		errs = append(errs, errors.New("ebay.rate_limit.daily_limit must not be negative"))
	}

	if cfg.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_minute must not be negative"))
	}
	if cfg.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit.burst must not be negative"))
	}

	if cfg.Extractor.Timeout < 0 {
		errs = append(errs, errors.New("extractor.timeout must not be negative"))
	}

	if cfg.QuotaSync.Interval < 0 {
		errs = append(errs, errors.New("quota_sync.interval must not be negative"))
	}
	if cfg.QuotaSync.WarnRatio < 0 || cfg.QuotaSync.WarnRatio > 1 {
		errs = append(errs, fmt.Errorf("quota_sync.warn_ratio must be between 0 and 1 (got %g)", cfg.QuotaSync.WarnRatio))
	}
	if u := cfg.Notifications.DiscordWebhookURL; u != "" {
		if err := validateURL(u); err != nil {
			errs = append(errs, fmt.Errorf("notifications.discord_webhook_url: %w", err))
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level),
		)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q must include a host", raw)
	}
	return nil
}
