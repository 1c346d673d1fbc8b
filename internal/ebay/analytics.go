package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

const defaultAnalyticsURL = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"

// Analytics API resource names for the endpoints the gateway proxies.
const (
	ResourceBrowse   = "buy.browse"
	ResourceTaxonomy = "commerce.taxonomy"
)

// rateLimitResponse is the top-level Analytics API response.
type rateLimitResponse struct {
	RateLimits []rateLimitEntry `json:"rateLimits"`
}

// rateLimitEntry represents one API context in the Analytics response.
type rateLimitEntry struct {
	APIContext string     `json:"apiContext"`
	APIName    string     `json:"apiName"`
	APIVersion string     `json:"apiVersion"`
	Resources  []resource `json:"resources"`
}

type resource struct {
	Name  string      `json:"name"`
	Rates []quotaRate `json:"rates"`
}

type quotaRate struct {
	Count      int64  `json:"count"`
	Limit      int64  `json:"limit"`
	Remaining  int64  `json:"remaining"`
	Reset      string `json:"reset"`
	TimeWindow int64  `json:"timeWindow"`
}

// QuotaState holds the parsed rate limit state for a single eBay API resource.
type QuotaState struct {
	Resource   string
	Count      int64
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	TimeWindow time.Duration
}

// AnalyticsClient queries the eBay Developer Analytics API for the
// application's upstream rate limit state.
type AnalyticsClient struct {
	tokens       TokenProvider
	analyticsURL string
	client       *http.Client
	resources    []string
}

// AnalyticsOption configures the AnalyticsClient.
type AnalyticsOption func(*AnalyticsClient)

// WithAnalyticsURL overrides the default Analytics API endpoint.
func WithAnalyticsURL(u string) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.analyticsURL = u
	}
}

// WithAnalyticsHTTPClient overrides the default HTTP client.
func WithAnalyticsHTTPClient(hc *http.Client) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.client = hc
	}
}

// WithResources overrides which resource names GetQuotas reports.
func WithResources(names ...string) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.resources = names
	}
}

// NewAnalyticsClient creates a new eBay Analytics API client.
func NewAnalyticsClient(
	tokens TokenProvider,
	opts ...AnalyticsOption,
) *AnalyticsClient {
	c := &AnalyticsClient{
		tokens:       tokens,
		analyticsURL: defaultAnalyticsURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		resources:    []string{ResourceBrowse, ResourceTaxonomy},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetQuotas returns the upstream quota state of every configured resource
// found in the Analytics response, in configuration order. Resources the
// response does not mention are skipped; finding none is an error.
func (c *AnalyticsClient) GetQuotas(ctx context.Context) ([]QuotaState, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u, err := url.Parse(c.analyticsURL)
	if err != nil {
		return nil, fmt.Errorf("parsing analytics URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodGet, u.String(), http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("creating analytics request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, domain.Upstream(
			http.StatusBadGateway,
			err.Error(),
			fmt.Errorf("executing analytics request: %w", err),
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analytics response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Upstream(
			resp.StatusCode,
			errorDetails(body),
			fmt.Errorf("analytics API error (status %d)", resp.StatusCode),
		)
	}

	var apiResp rateLimitResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing analytics response: %w", err)
	}

	return extractQuotas(apiResp, c.resources)
}

func extractQuotas(resp rateLimitResponse, wanted []string) ([]QuotaState, error) {
	found := make(map[string]QuotaState, len(wanted))

	for _, entry := range resp.RateLimits {
		for _, res := range entry.Resources {
			if !slices.Contains(wanted, res.Name) {
				continue
			}
			if len(res.Rates) == 0 {
				return nil, fmt.Errorf("no rates found for resource %q", res.Name)
			}

			r := res.Rates[0]

			resetAt, err := time.Parse(time.RFC3339, r.Reset)
			if err != nil {
				return nil, fmt.Errorf("parsing reset time %q: %w", r.Reset, err)
			}

			found[res.Name] = QuotaState{
				Resource:   res.Name,
				Count:      r.Count,
				Limit:      r.Limit,
				Remaining:  r.Remaining,
				ResetAt:    resetAt,
				TimeWindow: time.Duration(r.TimeWindow) * time.Second,
			}
		}
	}

	quotas := make([]QuotaState, 0, len(found))
	for _, name := range wanted {
		if q, ok := found[name]; ok {
			quotas = append(quotas, q)
		}
	}

	if len(quotas) == 0 {
		return nil, fmt.Errorf("resources %q not found in analytics response", wanted)
	}

	return quotas, nil
}
