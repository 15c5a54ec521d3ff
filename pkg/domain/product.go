package domain

import "fmt"

// Product is an immutable catalog entry. The catalog is loaded once at
// startup and never mutated; sessions reference products by value copy.
type Product struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Price           float64 `json:"price"`
	Specifications  string  `json:"specifications"`
	Features        string  `json:"features"`
	UserReviews     string  `json:"user_reviews"`
	PopularityScore int     `json:"popularity_score"`
}

// Line renders the full single-line description used in recommendations,
// comparisons and generation prompts.
func (p Product) Line() string {
	return fmt.Sprintf("%s: %s, priced at $%.2f, features: %s, user reviews: %s, popularity score: %d",
		p.Name, p.Specifications, p.Price, p.Features, p.UserReviews, p.PopularityScore)
}

// Description is the text embedded for similarity search.
func (p Product) Description() string {
	return fmt.Sprintf("%s %s %s %s %s", p.Name, p.Category, p.Brand, p.Specifications, p.Features)
}
