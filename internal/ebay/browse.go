package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

const (
	defaultSearchURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultItemURL     = "https://api.ebay.com/buy/browse/v1/item/"
	defaultCategoryURL = "https://api.ebay.com/commerce/taxonomy/v1/category_tree/0/get_category_suggestions"
	defaultMarketplace = "EBAY_US"

	// DefaultSearchLimit is used when a search does not specify a limit.
	DefaultSearchLimit = 5

	marketplaceHeader = "X-EBAY-C-MARKETPLACE-ID"
)

// Operation names used for metrics and logs.
const (
	opSearch   = "search"
	opItem     = "get_item"
	opCategory = "suggest_category"
)

// Client implements Marketplace against the eBay Browse and Taxonomy APIs.
// It performs no schema validation: successful bodies are returned as-is.
type Client struct {
	tokens      TokenProvider
	searchURL   string
	itemURL     string
	categoryURL string
	marketplace string
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithSearchURL overrides the default item search endpoint.
func WithSearchURL(u string) ClientOption {
	return func(c *Client) {
		c.searchURL = u
	}
}

// WithItemURL overrides the item detail endpoint. The item ID is appended to it.
func WithItemURL(u string) ClientOption {
	return func(c *Client) {
		c.itemURL = u
	}
}

// WithCategoryURL overrides the category suggestion endpoint.
func WithCategoryURL(u string) ClientOption {
	return func(c *Client) {
		c.categoryURL = u
	}
}

// WithMarketplace overrides the default marketplace.
func WithMarketplace(m string) ClientOption {
	return func(c *Client) {
		c.marketplace = m
	}
}

// WithClientHTTPClient overrides the default HTTP client.
func WithClientHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithClientLogger sets the logger used for upstream failures.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new eBay marketplace client.
func NewClient(tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokens:      tokens,
		searchURL:   defaultSearchURL,
		itemURL:     defaultItemURL,
		categoryURL: defaultCategoryURL,
		marketplace: defaultMarketplace,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements Marketplace.Search using the Browse item_summary API.
func (c *Client) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	if req.Query == "" {
		return nil, domain.Validation("q", "Search query is required")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("limit", strconv.Itoa(limit))

	return c.get(ctx, opSearch, c.searchURL+"?"+params.Encode())
}

// GetItem implements Marketplace.GetItem using the Browse item API.
func (c *Client) GetItem(ctx context.Context, itemID string) (json.RawMessage, error) {
	if itemID == "" {
		return nil, domain.Validation("id", "Item ID is required")
	}

	base := c.itemURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return c.get(ctx, opItem, base+url.PathEscape(itemID))
}

// SuggestCategory implements Marketplace.SuggestCategory using the Taxonomy API.
func (c *Client) SuggestCategory(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, domain.Validation("q", "Query is required")
	}

	params := url.Values{}
	params.Set("q", query)

	return c.get(ctx, opCategory, c.categoryURL+"?"+params.Encode())
}

// get performs one authenticated read. It never retries.
func (c *Client) get(ctx context.Context, op, u string) (json.RawMessage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set(marketplaceHeader, c.marketplace)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.EbayAPIDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EbayAPICallsTotal.WithLabelValues(op, "error").Inc()
		c.log.Error("eBay request failed", "operation", op, "error", err)
		return nil, domain.Upstream(
			http.StatusBadGateway,
			err.Error(),
			fmt.Errorf("executing %s request: %w", op, err),
		)
	}
	defer resp.Body.Close()

	metrics.EbayAPICallsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Upstream(
			http.StatusBadGateway,
			err.Error(),
			fmt.Errorf("reading %s response: %w", op, err),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("eBay API error", "operation", op, "status", resp.StatusCode)
		return nil, domain.Upstream(
			resp.StatusCode,
			errorDetails(body),
			fmt.Errorf("eBay API error (status %d)", resp.StatusCode),
		)
	}

	if !json.Valid(body) {
		return nil, domain.Upstream(
			http.StatusBadGateway,
			"eBay API returned a non-JSON body",
			fmt.Errorf("parsing %s response: invalid JSON", op),
		)
	}

	return json.RawMessage(body), nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.rateLimiter == nil {
		return nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.EbayDailyLimitHits.Inc()
			return domain.Upstream(
				http.StatusTooManyRequests,
				"daily eBay API limit reached",
				fmt.Errorf("rate limit: %w", err),
			)
		}
		return fmt.Errorf("rate limit: %w", err)
	}

	metrics.EbayDailyUsage.Set(float64(c.rateLimiter.Snapshot().Used))
	return nil
}

// errorDetails returns the upstream error body parsed as JSON when possible,
// otherwise as text. Empty bodies yield nil.
func errorDetails(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}
