package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
	score "github.com/donaldgifford/ebay-listing-gateway/pkg/scorer"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// AnalyticsInput holds the query parameters for the listing analytics endpoint.
type AnalyticsInput struct {
	Title    string `query:"title"    doc:"Listing title"                example:"Brand New Widget XL Pro Edition"`
	Price    string `query:"price"    doc:"Listing price"                example:"1500"`
	Category string `query:"category" doc:"Listing category (optional)" example:"Electronics"`
}

// AnalyticsOutput is the response body for the listing analytics endpoint.
type AnalyticsOutput struct {
	Body domain.ScoreResult
}

// Analytics scores a listing's title, price, and category.
func Analytics(_ context.Context, input *AnalyticsInput) (*AnalyticsOutput, error) {
	result, err := score.Score(score.Input{
		Title:    input.Title,
		Price:    input.Price,
		Category: input.Category,
	})
	if err != nil {
		return nil, errorFor(msgScore, err)
	}

	metrics.ListingScoreDistribution.Observe(float64(result.Score))
	return &AnalyticsOutput{Body: result}, nil
}

// RegisterAnalyticsRoutes registers the listing analytics endpoint with the Huma API.
func RegisterAnalyticsRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-listing-quality",
		Method:      http.MethodGet,
		Path:        "/analytics",
		Summary:     "Score listing quality",
		Description: "Scores a listing from 0 to 100 using its title, price, and " +
			"category, with tips for improving it.",
		Tags:   []string{"listings"},
		Errors: []int{http.StatusBadRequest},
	}, Analytics)
}
