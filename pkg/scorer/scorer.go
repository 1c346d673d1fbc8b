// Package score computes the heuristic listing-quality score for a
// prospective eBay listing.
package score

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// MarketAdvice is appended to every score result.
const MarketAdvice = "Based on current eBay trends, consider adding free shipping to increase visibility."

const maxScore = 100

var (
	conditionPattern = regexp.MustCompile(`\b(new|brand new|sealed|unused)\b`)

	priceHighThreshold = decimal.NewFromInt(1000)
)

// Input holds the raw listing fields to score. Price is kept as text so that
// parsing and validation happen in one place.
type Input struct {
	Title    string
	Price    string
	Category string
}

// Breakdown shows per-rule points before the cap is applied.
type Breakdown struct {
	Title     int
	Condition int
	Price     int
	Category  int
	Total     int
}

// Score validates in and computes the listing quality result. Identical
// inputs always yield identical results.
func Score(in Input) (domain.ScoreResult, error) {
	if in.Title == "" {
		return domain.ScoreResult{}, domain.Validation("title", "Title is required")
	}
	if in.Price == "" {
		return domain.ScoreResult{}, domain.Validation("price", "Price is required")
	}

	price, err := ParsePrice(in.Price)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	b, tips := Evaluate(in.Title, price, in.Category)

	return domain.ScoreResult{
		Score:           b.Total,
		Rating:          domain.RatingFor(b.Total),
		ImprovementTips: tips,
		MarketAdvice:    MarketAdvice,
	}, nil
}

// ParsePrice parses a price string into a non-negative decimal.
func ParsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.Validation("price", "Price must be a valid number")
	}
	if price.IsNegative() {
		return decimal.Zero, domain.Validation("price", "Price must not be negative")
	}
	return price, nil
}

// Evaluate applies every scoring rule and returns the breakdown together with
// the tips, in rule order. Each rule contributes at most one tip.
func Evaluate(title string, price decimal.Decimal, category string) (Breakdown, []string) {
	var (
		b    Breakdown
		tips = make([]string, 0, 4)
		tip  string
	)

	b.Title, tip = titleScore(title)
	tips = appendTip(tips, tip)

	b.Condition, tip = conditionScore(title)
	tips = appendTip(tips, tip)

	b.Price, tip = priceScore(price)
	tips = appendTip(tips, tip)

	b.Category, tip = categoryScore(category)
	tips = appendTip(tips, tip)

	b.Total = min(b.Title+b.Condition+b.Price+b.Category, maxScore)

	return b, tips
}

// titleScore rewards longer titles, which carry more searchable keywords.
func titleScore(title string) (int, string) {
	switch n := utf8.RuneCountInString(title); {
	case n < 30:
		return 20, "Title is too short. Consider adding more relevant keywords to improve searchability."
	case n < 60:
		return 40, "Title is good but could be more descriptive to maximize keywords."
	default:
		return 50, "Title length is excellent for eBay search optimization."
	}
}

func conditionScore(title string) (int, string) {
	if conditionPattern.MatchString(strings.ToLower(title)) {
		return 10, "Good job including condition keywords in your title."
	}
	return 0, "Consider adding condition keywords to your title if applicable."
}

// priceScore gives nothing for a zero price, not even a tip.
func priceScore(price decimal.Decimal) (int, string) {
	switch {
	case price.IsPositive() && price.LessThan(priceHighThreshold):
		return 20, "Price point seems reasonable for most categories."
	case price.GreaterThanOrEqual(priceHighThreshold):
		return 15, "Higher priced items may need more detailed descriptions and photos."
	default:
		return 0, ""
	}
}

// categoryScore treats any non-empty category as present, whitespace included.
func categoryScore(category string) (int, string) {
	if category != "" {
		return 20, fmt.Sprintf("Listing is properly categorized in %s.", category)
	}
	return 0, "Adding a specific category can help buyers find your item."
}

func appendTip(tips []string, tip string) []string {
	if tip == "" {
		return tips
	}
	return append(tips, tip)
}
