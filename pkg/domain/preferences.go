package domain

import "fmt"

// SortKey identifies the ranking applied to a shortlist.
type SortKey string

const (
	SortPopularityDesc SortKey = "popularity-desc" // "best seller"
	SortRecencyDesc    SortKey = "recency-desc"    // "new arrival" (higher id = newer)
	SortPriceAsc       SortKey = "price-asc"       // "price low to high"
	SortPriceDesc      SortKey = "price-desc"      // "price high to low"
)

// BudgetRange is a closed price interval in the catalog's currency unit.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price falls inside the range, inclusive.
func (b BudgetRange) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// Label renders the range the way budget bands are offered to the user.
func (b BudgetRange) Label() string {
	return fmt.Sprintf("$%.0f-$%.0f", b.Min, b.Max)
}

// Preferences accumulate over the course of one funnel walk.
// A later field may only be set once the preceding one is: the dialog
// machine enforces category -> brand -> budget -> sort ordering.
type Preferences struct {
	Category string       `json:"category,omitempty"`
	Brand    string       `json:"brand,omitempty"`
	Budget   *BudgetRange `json:"budget,omitempty"`
	Sort     SortKey      `json:"sort,omitempty"`
}

// Complete reports whether every funnel field has been collected.
func (p Preferences) Complete() bool {
	return p.Category != "" && p.Brand != "" && p.Budget != nil && p.Sort != ""
}
