package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-listing-gateway/internal/api/handlers"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/extract"
	extractMocks "github.com/donaldgifford/ebay-listing-gateway/pkg/extract/mocks"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

func TestAnalyzeHandler_AnalyzeListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       []any
		setupMock  func(*extractMocks.MockListingExtractor)
		wantStatus int
		wantBody   string
	}{
		{
			name: "returns extraction",
			body: []any{map[string]any{"url": "https://www.ebay.com/itm/1"}},
			setupMock: func(m *extractMocks.MockListingExtractor) {
				m.EXPECT().
					Extract(mock.Anything, "https://www.ebay.com/itm/1").
					Return(&domain.ListingExtraction{
						Title:              "New New SEALED widget",
						Keywords:           []string{"new", "sealed", "widget"},
						DescriptionSnippet: "No description available",
					}, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{
				"title": "New New SEALED widget",
				"keywords": ["new", "sealed", "widget"],
				"description_snippet": "No description available"
			}`,
		},
		{
			name: "missing url returns 400",
			body: []any{map[string]any{}},
			setupMock: func(m *extractMocks.MockListingExtractor) {
				m.EXPECT().
					Extract(mock.Anything, "").
					Return(nil, domain.Validation("url", "Missing URL")).
					Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing URL"}`,
		},
		{
			name: "missing body returns 400",
			setupMock: func(m *extractMocks.MockListingExtractor) {
				m.EXPECT().
					Extract(mock.Anything, "").
					Return(nil, domain.Validation("url", "Missing URL")).
					Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing URL"}`,
		},
		{
			name: "removed listing returns 400",
			body: []any{map[string]any{"url": "https://www.ebay.com/itm/2"}},
			setupMock: func(m *extractMocks.MockListingExtractor) {
				m.EXPECT().
					Extract(mock.Anything, mock.Anything).
					Return(nil, domain.Fetch(
						http.StatusNotFound,
						"Listing URL not available or removed",
						errors.New("listing returned status 404"),
					)).
					Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Listing URL not available or removed"}`,
		},
		{
			name: "parse failure returns 500",
			body: []any{map[string]any{"url": "https://www.ebay.com/itm/3"}},
			setupMock: func(m *extractMocks.MockListingExtractor) {
				m.EXPECT().
					Extract(mock.Anything, mock.Anything).
					Return(nil, errors.New("parsing listing HTML: unexpected EOF")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: `{
				"error": "Error analyzing listing URL",
				"details": "parsing listing HTML: unexpected EOF"
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockExtractor := extractMocks.NewMockListingExtractor(t)
			tt.setupMock(mockExtractor)

			_, api := humatest.New(t, handlers.NewAPIConfig("test"))
			handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(mockExtractor))

			resp := api.Post("/analyze-listing", tt.body...)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestAnalyzeHandler_MalformedJSON(t *testing.T) {
	t.Parallel()

	// No expectations: the extractor must not run.
	mockExtractor := extractMocks.NewMockListingExtractor(t)

	_, api := humatest.New(t, handlers.NewAPIConfig("test"))
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(mockExtractor))

	resp := api.Post("/analyze-listing", strings.NewReader(`{"url":`))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"error"`)
}

// TestAnalyzeHandler_RealExtractor drives the endpoint through the real
// extractor and a local listing page.
func TestAnalyzeHandler_RealExtractor(t *testing.T) {
	t.Parallel()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><body><h1>Brand New Widget</h1></body></html>`)
	}))
	defer page.Close()

	_, api := humatest.New(t, handlers.NewAPIConfig("test"))
	handlers.RegisterAnalyzeRoutes(
		api,
		handlers.NewAnalyzeHandler(extract.New(extract.WithAllowedHosts())),
	)

	resp := api.Post("/analyze-listing", map[string]any{"url": page.URL})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{
		"title": "Brand New Widget",
		"keywords": ["brand", "new", "widget"],
		"description_snippet": "No description available"
	}`, resp.Body.String())
}

func TestAnalyzeHandler_ForeignHostNotFetched(t *testing.T) {
	t.Parallel()

	var fetched bool
	page := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		fetched = true
	}))
	defer page.Close()

	_, api := humatest.New(t, handlers.NewAPIConfig("test"))
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(extract.New()))

	resp := api.Post("/analyze-listing", map[string]any{"url": page.URL})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"URL host is not an eBay domain"}`, resp.Body.String())
	assert.False(t, fetched)
}
