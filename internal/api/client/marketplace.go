package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// Search runs an eBay product search. A limit <= 0 lets the server pick its
// default.
func (c *Client) Search(ctx context.Context, query string, limit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var body json.RawMessage
	if err := c.get(ctx, "/search?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body, nil
}

// GetItem returns the eBay item details for id.
func (c *Client) GetItem(ctx context.Context, id string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("id", id)

	var body json.RawMessage
	if err := c.get(ctx, "/item?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body, nil
}

// SuggestCategory returns eBay category suggestions for query.
func (c *Client) SuggestCategory(ctx context.Context, query string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", query)

	var body json.RawMessage
	if err := c.get(ctx, "/category?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	return body, nil
}

// AnalyzeListing summarizes the public listing page at listingURL.
func (c *Client) AnalyzeListing(
	ctx context.Context,
	listingURL string,
) (*domain.ListingExtraction, error) {
	var out domain.ListingExtraction
	req := map[string]string{"url": listingURL}
	if err := c.post(ctx, "/analyze-listing", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoreParams are the listing fields sent for scoring. Price is passed as
// text so the server performs the numeric validation.
type ScoreParams struct {
	Title    string
	Price    string
	Category string
}

// Score returns the heuristic quality score for a listing.
func (c *Client) Score(ctx context.Context, params ScoreParams) (*domain.ScoreResult, error) {
	q := url.Values{}
	q.Set("title", params.Title)
	q.Set("price", params.Price)
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	var out domain.ScoreResult
	if err := c.get(ctx, "/analytics?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpstreamQuota is one eBay API resource's quota as reported by eBay.
type UpstreamQuota struct {
	Resource          string    `json:"resource"`
	Count             int64     `json:"count"`
	Limit             int64     `json:"limit"`
	Remaining         int64     `json:"remaining"`
	ResetAt           time.Time `json:"reset_at"`
	TimeWindowSeconds int64     `json:"time_window_seconds"`
}

// QuotaStatus is the gateway's eBay API usage.
type QuotaStatus struct {
	DailyLimit int64           `json:"daily_limit"`
	DailyUsed  int64           `json:"daily_used"`
	Remaining  int64           `json:"remaining"`
	ResetAt    time.Time       `json:"reset_at"`
	Upstream   []UpstreamQuota `json:"upstream"`
}

// Quota returns the gateway's eBay API quota status.
func (c *Client) Quota(ctx context.Context) (*QuotaStatus, error) {
	var out QuotaStatus
	if err := c.get(ctx, "/quota", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
