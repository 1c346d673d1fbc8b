package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope"

	// SafetyBuffer is subtracted from the provider's stated token lifetime so
	// a token never expires mid-flight.
	SafetyBuffer = 300 * time.Second

	// MaxTokenLifetime caps the lifetime taken from expires_in.
	MaxTokenLifetime = 365 * 24 * time.Hour
)

// TokenCache implements TokenProvider using the eBay OAuth2 client
// credentials flow. It holds a single token and refreshes it lazily, on the
// first call after expiry. The check-and-refresh sequence is serialized so
// concurrent callers trigger at most one exchange.
type TokenCache struct {
	creds    Credentials
	tokenURL string
	scope    string
	client   *http.Client
	log      *slog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time        // zero value means no token was ever issued
	nowFunc   func() time.Time // for testing
}

// TokenOption configures the TokenCache.
type TokenOption func(*TokenCache)

// WithTokenURL overrides the default eBay token endpoint.
func WithTokenURL(u string) TokenOption {
	return func(c *TokenCache) {
		c.tokenURL = u
	}
}

// WithScope overrides the OAuth scope requested from eBay.
func WithScope(s string) TokenOption {
	return func(c *TokenCache) {
		c.scope = s
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) TokenOption {
	return func(c *TokenCache) {
		c.client = hc
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) TokenOption {
	return func(c *TokenCache) {
		c.nowFunc = f
	}
}

// WithTokenLogger sets the logger used for refresh events.
func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(c *TokenCache) {
		c.log = l
	}
}

// NewTokenCache creates an empty token cache for the given credentials.
func NewTokenCache(creds Credentials, opts ...TokenOption) *TokenCache {
	c := &TokenCache{
		creds:    creds,
		tokenURL: defaultTokenURL,
		scope:    defaultScope,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      logger.Discard(),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   *int   `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Token returns a valid OAuth2 access token, exchanging credentials when the
// cached one is absent or expired. Failures are *domain.Error of KindAuth and
// leave the cache untouched.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.nowFunc().Before(c.expiresAt) {
		return c.token, nil
	}

	token, err := c.refreshLocked(ctx)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		c.log.Error("eBay token exchange failed", "error", err)
		return "", domain.Auth("Failed to authenticate with eBay API", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	c.log.Debug("eBay token refreshed", "expires_at", c.expiresAt)
	return token, nil
}

// ExpiresAt reports when the cached token stops being served. The zero time
// means no token has been issued yet.
func (c *TokenCache) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt
}

func (c *TokenCache) refreshLocked(ctx context.Context) (string, error) {
	if c.creds.AppID == "" || c.creds.ClientSecret == "" {
		return "", errors.New("eBay app id and client secret must both be configured")
	}

	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {c.scope},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	creds := base64.StdEncoding.EncodeToString(
		[]byte(c.creds.AppID + ":" + c.creds.ClientSecret),
	)
	req.Header.Set("Authorization", "Basic "+creds)

	// Issue time is taken before the round trip so network latency eats into
	// the lifetime rather than extending it.
	issuedAt := c.nowFunc()

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		return "", fmt.Errorf(
			"token request failed (status %d): %s - %s",
			resp.StatusCode,
			errResp.Error,
			errResp.ErrorDescription,
		)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	if tokenResp.ExpiresIn == nil {
		return "", errors.New("token response missing expires_in")
	}

	c.token = tokenResp.AccessToken
	c.expiresAt = issuedAt.
		Add(tokenLifetime(*tokenResp.ExpiresIn)).
		Add(-SafetyBuffer)

	return c.token, nil
}

// tokenLifetime converts expires_in seconds to a duration clamped to
// [0, MaxTokenLifetime], so oversized values cannot overflow.
func tokenLifetime(seconds int) time.Duration {
	switch {
	case seconds <= 0:
		return 0
	case int64(seconds) > int64(MaxTokenLifetime/time.Second):
		return MaxTokenLifetime
	default:
		return time.Duration(seconds) * time.Second
	}
}
