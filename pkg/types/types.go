// Package domain defines the core business types for the eBay listing gateway.
package domain

// Rating is the quality band assigned to a scored listing.
type Rating string

// Rating constants, ordered from worst to best.
const (
	RatingPoor      Rating = "Poor"
	RatingFair      Rating = "Fair"
	RatingGood      Rating = "Good"
	RatingExcellent Rating = "Excellent"
)

// RatingFor maps a capped score to its rating band.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}

// ListingExtraction is the result of scraping a public listing page.
type ListingExtraction struct {
	Title              string   `json:"title"               example:"Dell PowerEdge R630 2x E5-2680v4" doc:"First top-level heading on the page"`
	Keywords           []string `json:"keywords"            doc:"Deduplicated, sorted lowercase words of three or more letters (max 20)"`
	DescriptionSnippet string   `json:"description_snippet" doc:"First 250 characters of the listing description"`
}

// ScoreResult is the heuristic listing-quality assessment.
type ScoreResult struct {
	Score           int      `json:"score"            minimum:"0" maximum:"100" example:"85" doc:"Capped quality score"`
	Rating          Rating   `json:"rating"           enum:"Poor,Fair,Good,Excellent" example:"Excellent" doc:"Score band"`
	ImprovementTips []string `json:"improvement_tips" doc:"One tip per scoring rule that produced one"`
	MarketAdvice    string   `json:"market_advice"    doc:"General marketplace advice"`
}
