package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Quota(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantErr     string
	}{
		{
			name:        "validation envelope",
			status:      http.StatusBadRequest,
			body:        `{"error":"Search query is required"}`,
			wantMessage: "Search query is required",
			wantErr:     "API error (HTTP 400): Search query is required",
		},
		{
			name:        "upstream envelope with details",
			status:      http.StatusNotFound,
			body:        `{"error":"Error getting eBay item details","details":{"errorMessage":"not found"}}`,
			wantMessage: "Error getting eBay item details",
			wantErr:     `API error (HTTP 404): Error getting eBay item details: {"errorMessage":"not found"}`,
		},
		{
			name:    "non-JSON body",
			status:  http.StatusBadGateway,
			body:    "bad gateway",
			wantErr: "API error (HTTP 502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Search(context.Background(), "", 0)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "vintage camera", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":1}`))
	}))
	defer srv.Close()

	body, err := New(srv.URL).Search(context.Background(), "vintage camera", 3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1}`, string(body))
}

func TestClient_SearchOmitsUnsetLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("limit"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "lens", 0)
	require.NoError(t, err)
}

func TestClient_GetItem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item", r.URL.Path)
		assert.Equal(t, "v1|123|0", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"itemId":"v1|123|0"}`))
	}))
	defer srv.Close()

	body, err := New(srv.URL).GetItem(context.Background(), "v1|123|0")
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemId":"v1|123|0"}`, string(body))
}

func TestClient_SuggestCategory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/category", r.URL.Path)
		assert.Equal(t, "digital camera", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"categorySuggestions":[]}`))
	}))
	defer srv.Close()

	body, err := New(srv.URL).SuggestCategory(context.Background(), "digital camera")
	require.NoError(t, err)
	assert.JSONEq(t, `{"categorySuggestions":[]}`, string(body))
}

func TestClient_AnalyzeListing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze-listing", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://www.ebay.com/itm/1", req["url"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.ListingExtraction{
			Title:              "Canon AE-1",
			Keywords:           []string{"canon"},
			DescriptionSnippet: "Works great",
		})
	}))
	defer srv.Close()

	out, err := New(srv.URL).AnalyzeListing(context.Background(), "https://www.ebay.com/itm/1")
	require.NoError(t, err)
	assert.Equal(t, "Canon AE-1", out.Title)
	assert.Equal(t, []string{"canon"}, out.Keywords)
}

func TestClient_Score(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics", r.URL.Path)
		assert.Equal(t, "Widget", r.URL.Query().Get("title"))
		assert.Equal(t, "12.50", r.URL.Query().Get("price"))
		assert.False(t, r.URL.Query().Has("category"))

		_ = json.NewEncoder(w).Encode(domain.ScoreResult{Score: 40, Rating: domain.RatingFair})
	}))
	defer srv.Close()

	out, err := New(srv.URL).Score(context.Background(), ScoreParams{Title: "Widget", Price: "12.50"})
	require.NoError(t, err)
	assert.Equal(t, 40, out.Score)
	assert.Equal(t, domain.RatingFair, out.Rating)
}

func TestClient_Quota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quota", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"daily_limit": 5000,
			"daily_used": 12,
			"remaining": 4988,
			"reset_at": "2026-02-17T08:00:00Z",
			"upstream": [{"resource":"buy.browse","count":12,"limit":5000,"remaining":4988,
				"reset_at":"2026-02-17T08:00:00Z","time_window_seconds":86400}]
		}`))
	}))
	defer srv.Close()

	out, err := New(srv.URL).Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), out.DailyLimit)
	assert.Equal(t, int64(12), out.DailyUsed)
	require.Len(t, out.Upstream, 1)
	assert.Equal(t, "buy.browse", out.Upstream[0].Resource)
	assert.Equal(t, int64(86400), out.Upstream[0].TimeWindowSeconds)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
