package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
)

// UpstreamQuotas reports the quota eBay itself tracks for the application.
type UpstreamQuotas interface {
	GetQuotas(ctx context.Context) ([]ebay.QuotaState, error)
}

// QuotaHandler provides the eBay API quota status endpoint.
type QuotaHandler struct {
	rl       *ebay.RateLimiter
	upstream UpstreamQuotas
}

// NewQuotaHandler creates a new QuotaHandler. Either source may be nil.
func NewQuotaHandler(rl *ebay.RateLimiter, upstream UpstreamQuotas) *QuotaHandler {
	return &QuotaHandler{rl: rl, upstream: upstream}
}

// UpstreamQuota is one eBay API resource's quota as reported by eBay.
type UpstreamQuota struct {
	Resource          string    `json:"resource"            example:"buy.browse"           doc:"eBay API resource name"`
	Count             int64     `json:"count"               example:"110"                  doc:"Calls made in the current window"`
	Limit             int64     `json:"limit"               example:"5000"                 doc:"Calls allowed per window"`
	Remaining         int64     `json:"remaining"           example:"4890"                 doc:"Calls remaining in the current window"`
	ResetAt           time.Time `json:"reset_at"            example:"2026-02-17T08:00:00Z" doc:"When the window resets"`
	TimeWindowSeconds int64     `json:"time_window_seconds" example:"86400"                doc:"Window length in seconds"`
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64           `json:"daily_limit"        example:"5000"                 doc:"Configured daily API call limit"`
		DailyUsed  int64           `json:"daily_used"         example:"142"                  doc:"API calls used in the current 24-hour window"`
		Remaining  int64           `json:"remaining"          example:"4858"                 doc:"API calls remaining in the current window"`
		ResetAt    time.Time       `json:"reset_at"           example:"2025-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
		Upstream   []UpstreamQuota `json:"upstream,omitempty"                                doc:"Quota state reported by the eBay Analytics API"`
	}
}

// GetQuota returns the current eBay API quota status.
func (h *QuotaHandler) GetQuota(ctx context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}

	if h.rl != nil {
		snap := h.rl.Snapshot()
		resp.Body.DailyLimit = snap.Limit
		resp.Body.DailyUsed = snap.Used
		resp.Body.Remaining = snap.Remaining
		resp.Body.ResetAt = snap.ResetAt
	}

	if h.upstream != nil {
		quotas, err := h.upstream.GetQuotas(ctx)
		if err != nil {
			return nil, errorFor(msgQuota, err)
		}
		for _, q := range quotas {
			resp.Body.Upstream = append(resp.Body.Upstream, UpstreamQuota{
				Resource:          q.Resource,
				Count:             q.Count,
				Limit:             q.Limit,
				Remaining:         q.Remaining,
				ResetAt:           q.ResetAt,
				TimeWindowSeconds: int64(q.TimeWindow / time.Second),
			})
		}
	}

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/quota",
		Summary:     "Get eBay API quota status",
		Description: "Returns the gateway's daily eBay call usage and, when " +
			"configured, the quota eBay reports for the application.",
		Tags:   []string{"ebay"},
		Errors: []int{http.StatusInternalServerError, http.StatusBadGateway},
	}, h.GetQuota)
}
