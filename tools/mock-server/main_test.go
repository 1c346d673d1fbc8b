package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestFixture(t *testing.T) *browseAPIResponse {
	t.Helper()
	fixture, err := loadFixture(filepath.Join("testdata", "search_response.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return fixture
}

func loadTestCategories(t *testing.T) *categoryResponse {
	t.Helper()
	categories, err := loadCategories(filepath.Join("testdata", "category_suggestions.json"))
	if err != nil {
		t.Fatalf("loading categories: %v", err)
	}
	return categories
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newMux(testLogger(), loadTestFixture(t), loadTestCategories(t)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, http.NoBody)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer mock")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.ItemSummaries) == 0 {
		t.Fatal("expected items in fixture")
	}
	if fixture.Total != len(fixture.ItemSummaries) {
		t.Errorf("total=%d, want %d", fixture.Total, len(fixture.ItemSummaries))
	}

	categories := loadTestCategories(t)
	if len(categories.CategorySuggestions) == 0 {
		t.Fatal("expected suggestions in category fixture")
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	req.SetBasicAuth("app-id", "cert-id")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["token_type"] != "Application Access Token" {
		t.Errorf("token_type=%v, want Application Access Token", resp["token_type"])
	}
	if resp["expires_in"] != float64(7200) {
		t.Errorf("expires_in=%v, want 7200", resp["expires_in"])
	}
}

func TestTokenHandler_MissingAuth(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_client" {
		t.Errorf("error=%s, want invalid_client", resp["error"])
	}
}

func TestSearch_RequiresBearer(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/buy/browse/v1/item_summary/search?q=camera")
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status=%d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/buy/browse/v1/item_summary/search")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status=%d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestSearch_QueryFilter(t *testing.T) {
	srv := newTestServer(t)
	fixture := loadTestFixture(t)

	resp := get(t, srv, "/buy/browse/v1/item_summary/search?q=film+camera")

	var body browseAPIResponse
	decode(t, resp, &body)

	if body.Total == 0 {
		t.Fatal("expected film camera results")
	}
	if body.Total >= len(fixture.ItemSummaries) {
		t.Error("expected filter to reduce results")
	}
	for _, raw := range body.ItemSummaries {
		var item itemSummary
		_ = json.Unmarshal(raw, &item)
		title := strings.ToLower(item.Title)
		if !strings.Contains(title, "film") || !strings.Contains(title, "camera") {
			t.Errorf("title %q does not match every query word", item.Title)
		}
	}
}

func TestSearch_Pagination(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/buy/browse/v1/item_summary/search?q=camera&limit=2")

	var body browseAPIResponse
	decode(t, resp, &body)

	if len(body.ItemSummaries) != 2 {
		t.Errorf("items=%d, want 2", len(body.ItemSummaries))
	}
	if body.Total <= 2 {
		t.Fatalf("total=%d, want more than 2", body.Total)
	}
	if body.Next == "" {
		t.Error("expected non-empty next for paginated response")
	}
}

func TestSearch_NoResults(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/buy/browse/v1/item_summary/search?q=nonexistent_xyz_product")

	var body browseAPIResponse
	decode(t, resp, &body)

	if body.Total != 0 {
		t.Errorf("total=%d, want 0", body.Total)
	}
	if body.ItemSummaries == nil {
		t.Error("expected empty array, got nil")
	}
}

func TestItem(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/buy/browse/v1/item/"+url.PathEscape("v1|110554770412|0"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusOK)
	}

	var item itemSummary
	decode(t, resp, &item)
	if item.ItemID != "v1|110554770412|0" {
		t.Errorf("itemId=%s, want v1|110554770412|0", item.ItemID)
	}
}

func TestItem_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/buy/browse/v1/item/"+url.PathEscape("v1|1|0"))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var body struct {
		Errors []struct {
			ErrorID int `json:"errorId"`
		} `json:"errors"`
	}
	decode(t, resp, &body)
	if len(body.Errors) != 1 || body.Errors[0].ErrorID != 11001 {
		t.Errorf("errors=%+v, want a single 11001", body.Errors)
	}
}

func TestCategory(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/commerce/taxonomy/v1/category_tree/0/get_category_suggestions?q=lenses")

	var body categoryResponse
	decode(t, resp, &body)

	if len(body.CategorySuggestions) != 1 {
		t.Fatalf("suggestions=%d, want 1", len(body.CategorySuggestions))
	}
	var s categorySuggestion
	_ = json.Unmarshal(body.CategorySuggestions[0], &s)
	if s.Category.CategoryName != "Lenses" {
		t.Errorf("categoryName=%s, want Lenses", s.Category.CategoryName)
	}
}

func TestRateLimit_CountsCalls(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv, "/buy/browse/v1/item_summary/search?q=camera")
	get(t, srv, "/buy/browse/v1/item_summary/search?q=lens")
	get(t, srv, "/commerce/taxonomy/v1/category_tree/0/get_category_suggestions?q=film")

	resp := get(t, srv, "/developer/analytics/v1_beta/rate_limit/")

	var body struct {
		RateLimits []struct {
			Resources []struct {
				Name  string `json:"name"`
				Rates []struct {
					Count     int64 `json:"count"`
					Remaining int64 `json:"remaining"`
				} `json:"rates"`
			} `json:"resources"`
		} `json:"rateLimits"`
	}
	decode(t, resp, &body)

	got := map[string]int64{}
	for _, rl := range body.RateLimits {
		for _, r := range rl.Resources {
			got[r.Name] = r.Rates[0].Count
		}
	}
	if got["buy.browse"] != 2 {
		t.Errorf("buy.browse count=%d, want 2", got["buy.browse"])
	}
	if got["commerce.taxonomy"] != 1 {
		t.Errorf("commerce.taxonomy count=%d, want 1", got["commerce.taxonomy"])
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
