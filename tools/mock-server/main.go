// Package main implements a mock eBay API server for local development.
// It serves canned responses from JSON fixtures to simulate the eBay OAuth
// token endpoint, the Browse API, the Taxonomy API, and the Developer
// Analytics API without requiring real eBay credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const dailyLimit = 5000

type browseAPIResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	Next          string            `json:"next,omitempty"`
}

type itemSummary struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
}

type categoryResponse struct {
	CategoryTreeID      string            `json:"categoryTreeId"`
	CategoryTreeVersion string            `json:"categoryTreeVersion"`
	CategorySuggestions []json.RawMessage `json:"categorySuggestions"`
}

type categorySuggestion struct {
	Category struct {
		CategoryName string `json:"categoryName"`
	} `json:"category"`
	Ancestors []struct {
		CategoryName string `json:"categoryName"`
	} `json:"categoryTreeNodeAncestors"`
}

// counters tracks calls per Analytics resource.
type counters struct {
	browse   atomic.Int64
	taxonomy atomic.Int64
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	searchFile := flag.String("fixture", "tools/mock-server/testdata/search_response.json", "path to search response fixture")
	categoryFile := flag.String("categories", "tools/mock-server/testdata/category_suggestions.json", "path to category suggestions fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*searchFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *searchFile, "error", err)
		os.Exit(1)
	}
	categories, err := loadCategories(*categoryFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *categoryFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures",
		"items", len(fixture.ItemSummaries),
		"categories", len(categories.CategorySuggestions),
	)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock eBay server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture, categories)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *browseAPIResponse, categories *categoryResponse) *http.ServeMux {
	var calls counters

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", counted(&calls.browse, searchHandler(logger, fixture)))
	mux.HandleFunc("GET /buy/browse/v1/item/{id}", counted(&calls.browse, itemHandler(logger, fixture)))
	mux.HandleFunc(
		"GET /commerce/taxonomy/v1/category_tree/0/get_category_suggestions",
		counted(&calls.taxonomy, categoryHandler(logger, categories)),
	)
	mux.HandleFunc("GET /developer/analytics/v1_beta/rate_limit/", rateLimitHandler(&calls))
	return mux
}

func loadFixture(path string) (*browseAPIResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp browseAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func loadCategories(path string) (*categoryResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp categoryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func counted(n *atomic.Int64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// ebayError mimics the Browse API error body.
func ebayError(id int, category, message string) map[string]any {
	return map[string]any{
		"errors": []map[string]any{{
			"errorId":  id,
			"domain":   "API_BROWSE",
			"category": category,
			"message":  message,
		}},
	}
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate Basic Auth header is present (don't verify creds).
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, ebayError(1001, "REQUEST", "Invalid access token"))
	return false
}

// matchesAll reports whether every word of query appears in text.
func matchesAll(text, query string) bool {
	for _, word := range strings.Fields(query) {
		if !strings.Contains(text, word) {
			return false
		}
	}
	return true
}

func searchHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	// Pre-parse titles for filtering.
	type indexedItem struct {
		raw   json.RawMessage
		title string
	}
	items := make([]indexedItem, 0, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{raw: raw, title: strings.ToLower(s.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		q := strings.ToLower(r.URL.Query().Get("q"))
		if q == "" {
			writeJSON(w, http.StatusBadRequest, ebayError(12001, "REQUEST", "The 'q' parameter is required"))
			return
		}

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		offset := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
			offset = v
		}

		matched := []json.RawMessage{}
		for _, item := range items {
			if matchesAll(item.title, q) {
				matched = append(matched, item.raw)
			}
		}

		total := len(matched)

		if offset >= len(matched) {
			matched = []json.RawMessage{}
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		next := ""
		if offset+limit < total {
			next = fmt.Sprintf("/buy/browse/v1/item_summary/search?q=%s&offset=%d&limit=%d",
				r.URL.Query().Get("q"), offset+limit, limit)
		}

		writeJSON(w, http.StatusOK, browseAPIResponse{
			ItemSummaries: matched,
			Total:         total,
			Offset:        offset,
			Limit:         limit,
			Next:          next,
		})
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "offset", offset, "limit", limit)
	}
}

func itemHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	byID := make(map[string]json.RawMessage, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; id extraction is best-effort
		json.Unmarshal(raw, &s)
		byID[s.ItemID] = raw
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		id := r.PathValue("id")
		raw, ok := byID[id]
		if !ok {
			logger.Info("item not found", "id", id)
			writeJSON(w, http.StatusNotFound, ebayError(11001, "REQUEST", "The specified item Id was not found."))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(raw)
		logger.Info("item", "id", id)
	}
}

func categoryHandler(logger *slog.Logger, fixture *categoryResponse) http.HandlerFunc {
	type indexedSuggestion struct {
		raw  json.RawMessage
		text string
	}
	suggestions := make([]indexedSuggestion, 0, len(fixture.CategorySuggestions))
	for _, raw := range fixture.CategorySuggestions {
		var s categorySuggestion
		//nolint:errcheck,gosec // fixture data is trusted; name extraction is best-effort
		json.Unmarshal(raw, &s)
		names := []string{s.Category.CategoryName}
		for _, a := range s.Ancestors {
			names = append(names, a.CategoryName)
		}
		suggestions = append(suggestions, indexedSuggestion{
			raw:  raw,
			text: strings.ToLower(strings.Join(names, " ")),
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		q := strings.ToLower(r.URL.Query().Get("q"))
		if q == "" {
			writeJSON(w, http.StatusBadRequest, ebayError(62004, "REQUEST", "The 'q' parameter is missing"))
			return
		}

		matched := []json.RawMessage{}
		for _, s := range suggestions {
			for _, word := range strings.Fields(q) {
				if strings.Contains(s.text, word) {
					matched = append(matched, s.raw)
					break
				}
			}
		}

		writeJSON(w, http.StatusOK, categoryResponse{
			CategoryTreeID:      fixture.CategoryTreeID,
			CategoryTreeVersion: fixture.CategoryTreeVersion,
			CategorySuggestions: matched,
		})
		logger.Info("category", "query", q, "matched", len(matched))
	}
}

func rateLimitHandler(calls *counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		reset := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour).Format(time.RFC3339)
		rate := func(n int64) []map[string]any {
			return []map[string]any{{
				"count":      n,
				"limit":      dailyLimit,
				"remaining":  max(dailyLimit-n, 0),
				"reset":      reset,
				"timeWindow": 86400,
			}}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"rateLimits": []map[string]any{
				{
					"apiContext": "buy",
					"apiName":    "Browse",
					"apiVersion": "v1",
					"resources":  []map[string]any{{"name": "buy.browse", "rates": rate(calls.browse.Load())}},
				},
				{
					"apiContext": "commerce",
					"apiName":    "Taxonomy",
					"apiVersion": "v1",
					"resources":  []map[string]any{{"name": "commerce.taxonomy", "rates": rate(calls.taxonomy.Load())}},
				},
			},
		})
	}
}
