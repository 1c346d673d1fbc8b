package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-listing-gateway/pkg/extract"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// AnalyzeHandler scrapes listing pages.
type AnalyzeHandler struct {
	extractor extract.ListingExtractor
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(extractor extract.ListingExtractor) *AnalyzeHandler {
	return &AnalyzeHandler{extractor: extractor}
}

// AnalyzeListingBody is the request body for the analyze-listing endpoint.
type AnalyzeListingBody struct {
	URL string `json:"url,omitempty" doc:"Public eBay listing URL" example:"https://www.ebay.com/itm/110554770412"`
}

// AnalyzeListingInput wraps the optional request body so a missing body
// reports the missing URL rather than a missing body.
type AnalyzeListingInput struct {
	Body *AnalyzeListingBody
}

// AnalyzeListingOutput is the response body for the analyze-listing endpoint.
type AnalyzeListingOutput struct {
	Body *domain.ListingExtraction
}

// AnalyzeListing fetches a listing page and extracts title, keywords, and a
// description snippet.
func (h *AnalyzeHandler) AnalyzeListing(
	ctx context.Context,
	input *AnalyzeListingInput,
) (*AnalyzeListingOutput, error) {
	var rawURL string
	if input.Body != nil {
		rawURL = input.Body.URL
	}

	result, err := h.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, errorFor(msgAnalyze, err)
	}
	return &AnalyzeListingOutput{Body: result}, nil
}

// RegisterAnalyzeRoutes registers the listing analysis endpoint with the Huma API.
func RegisterAnalyzeRoutes(api huma.API, h *AnalyzeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-listing",
		Method:      http.MethodPost,
		Path:        "/analyze-listing",
		Summary:     "Analyze an eBay listing page",
		Description: "Fetches a public listing page and extracts its title, " +
			"keywords, and the start of its description.",
		Tags:   []string{"listings"},
		Errors: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.AnalyzeListing)
}
