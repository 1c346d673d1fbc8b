package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
)

// MarketplaceHandler proxies search, item, and category reads to eBay.
type MarketplaceHandler struct {
	client ebay.Marketplace
}

// NewMarketplaceHandler creates a new MarketplaceHandler.
func NewMarketplaceHandler(client ebay.Marketplace) *MarketplaceHandler {
	return &MarketplaceHandler{client: client}
}

// SearchInput holds the query parameters for the search endpoint.
type SearchInput struct {
	Query string `query:"q"     doc:"eBay search query"                          example:"vintage film camera"`
	Limit string `query:"limit" doc:"Maximum results to return (default 5)" example:"5"`
}

// ItemInput holds the query parameters for the item endpoint.
type ItemInput struct {
	ID string `query:"id" doc:"eBay item ID" example:"v1|110554770412|0"`
}

// CategoryInput holds the query parameters for the category endpoint.
type CategoryInput struct {
	Query string `query:"q" doc:"Product description to categorize" example:"digital camera"`
}

// PassthroughOutput carries an upstream JSON body unchanged.
type PassthroughOutput struct {
	Body json.RawMessage
}

// Search proxies an item search to the eBay Browse API.
func (h *MarketplaceHandler) Search(
	ctx context.Context,
	input *SearchInput,
) (*PassthroughOutput, error) {
	body, err := h.client.Search(ctx, ebay.SearchRequest{
		Query: input.Query,
		Limit: parseLimit(input.Limit),
	})
	if err != nil {
		return nil, errorFor(msgSearch, err)
	}
	return &PassthroughOutput{Body: body}, nil
}

// GetItem proxies an item detail lookup to the eBay Browse API.
func (h *MarketplaceHandler) GetItem(
	ctx context.Context,
	input *ItemInput,
) (*PassthroughOutput, error) {
	body, err := h.client.GetItem(ctx, input.ID)
	if err != nil {
		return nil, errorFor(msgItem, err)
	}
	return &PassthroughOutput{Body: body}, nil
}

// SuggestCategory proxies a category suggestion to the eBay Taxonomy API.
func (h *MarketplaceHandler) SuggestCategory(
	ctx context.Context,
	input *CategoryInput,
) (*PassthroughOutput, error) {
	body, err := h.client.SuggestCategory(ctx, input.Query)
	if err != nil {
		return nil, errorFor(msgCategory, err)
	}
	return &PassthroughOutput{Body: body}, nil
}

// parseLimit returns the requested limit, or the default for anything that
// is not a positive integer.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return ebay.DefaultSearchLimit
	}
	return n
}

// RegisterMarketplaceRoutes registers the eBay passthrough endpoints with the Huma API.
func RegisterMarketplaceRoutes(api huma.API, h *MarketplaceHandler) {
	upstreamErrors := []int{
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
	}

	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search eBay products",
		Description: "Searches the eBay Browse API and returns its response unchanged.",
		Tags:        []string{"ebay"},
		Errors:      upstreamErrors,
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/item",
		Summary:     "Get eBay item details",
		Description: "Fetches a single item from the eBay Browse API and returns its response unchanged.",
		Tags:        []string{"ebay"},
		Errors:      upstreamErrors,
	}, h.GetItem)

	huma.Register(api, huma.Operation{
		OperationID: "suggest-category",
		Method:      http.MethodGet,
		Path:        "/category",
		Summary:     "Suggest eBay categories",
		Description: "Asks the eBay Taxonomy API for category suggestions and returns its response unchanged.",
		Tags:        []string{"ebay"},
		Errors:      upstreamErrors,
	}, h.SuggestCategory)
}
