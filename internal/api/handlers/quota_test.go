package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-listing-gateway/internal/api/handlers"
	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

type fakeUpstreamQuotas struct {
	quotas []ebay.QuotaState
	err    error
}

func (f fakeUpstreamQuotas) GetQuotas(context.Context) ([]ebay.QuotaState, error) {
	return f.quotas, f.err
}

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rl         *ebay.RateLimiter
		preCalls   int
		wantStatus int
		wantLimit  int64
		wantUsed   int64
		wantRemain int64
	}{
		{
			name:       "nil rate limiter returns zeroes",
			rl:         nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "fresh rate limiter",
			rl:         ebay.NewRateLimiter(100, 10, 5000),
			wantStatus: http.StatusOK,
			wantLimit:  5000,
			wantRemain: 5000,
		},
		{
			name:       "rate limiter with usage",
			rl:         ebay.NewRateLimiter(100, 10, 100),
			preCalls:   3,
			wantStatus: http.StatusOK,
			wantLimit:  100,
			wantUsed:   3,
			wantRemain: 97,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Simulate some API calls.
			if tt.rl != nil {
				for range tt.preCalls {
					require.NoError(t, tt.rl.Wait(t.Context()))
				}
			}

			h := handlers.NewQuotaHandler(tt.rl, nil)

			_, api := humatest.New(t, handlers.NewAPIConfig("test"))
			handlers.RegisterQuotaRoutes(api, h)

			resp := api.Get("/quota")
			require.Equal(t, tt.wantStatus, resp.Code)

			var body struct {
				DailyLimit int64 `json:"daily_limit"`
				DailyUsed  int64 `json:"daily_used"`
				Remaining  int64 `json:"remaining"`
				Upstream   []any `json:"upstream"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tt.wantLimit, body.DailyLimit)
			assert.Equal(t, tt.wantUsed, body.DailyUsed)
			assert.Equal(t, tt.wantRemain, body.Remaining)
			assert.Nil(t, body.Upstream)
			assert.Contains(t, resp.Body.String(), `"reset_at"`)
		})
	}
}

func TestGetQuota_ResetAtValue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	rl := ebay.NewRateLimiter(
		5, 10, 5000,
		ebay.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	h := handlers.NewQuotaHandler(rl, nil)

	_, api := humatest.New(t, handlers.NewAPIConfig("test"))
	handlers.RegisterQuotaRoutes(api, h)

	resp := api.Get("/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	// ResetAt should be 24 hours from now.
	assert.Contains(t, resp.Body.String(), "2025-06-16T14:30:00Z")
}

func TestGetQuota_Upstream(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		upstream   fakeUpstreamQuotas
		wantStatus int
		wantBody   string
	}{
		{
			name: "includes upstream quotas",
			upstream: fakeUpstreamQuotas{quotas: []ebay.QuotaState{
				{
					Resource:   ebay.ResourceBrowse,
					Count:      110,
					Limit:      5000,
					Remaining:  4890,
					ResetAt:    reset,
					TimeWindow: 24 * time.Hour,
				},
			}},
			wantStatus: http.StatusOK,
			wantBody: `{
				"resource": "buy.browse",
				"count": 110,
				"limit": 5000,
				"remaining": 4890,
				"reset_at": "2026-02-17T08:00:00Z",
				"time_window_seconds": 86400
			}`,
		},
		{
			name: "upstream failure maps status",
			upstream: fakeUpstreamQuotas{err: domain.Upstream(
				http.StatusUnauthorized,
				map[string]any{"errors": []any{"Invalid access token"}},
				errors.New("analytics API error (status 401)"),
			)},
			wantStatus: http.StatusUnauthorized,
			wantBody: `{
				"error": "Error getting eBay API quota",
				"details": {"errors": ["Invalid access token"]}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t, handlers.NewAPIConfig("test"))
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(nil, tt.upstream))

			resp := api.Get("/quota")
			require.Equal(t, tt.wantStatus, resp.Code)

			if tt.wantStatus != http.StatusOK {
				assert.JSONEq(t, tt.wantBody, resp.Body.String())
				return
			}

			var body struct {
				Upstream []json.RawMessage `json:"upstream"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Len(t, body.Upstream, 1)
			assert.JSONEq(t, tt.wantBody, string(body.Upstream[0]))
		})
	}
}
