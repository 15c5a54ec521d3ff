package catalog

import (
	"sort"
	"strings"

	"github.com/stepedge/concierge/pkg/domain"
)

// shortlistLimit caps every recommendation set.
const shortlistLimit = 3

// Catalog is the read-only product collection. It is loaded once at startup
// and requires no locking afterwards.
type Catalog struct {
	products []domain.Product
}

// New wraps an already-loaded product list.
func New(products []domain.Product) *Catalog {
	return &Catalog{products: products}
}

// Products returns the full catalog in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID returns the product with the given id.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Browse filters by category (case-insensitive, empty = all) and sorts by
// "price" or "name". It serves the read-only products API, not the dialog
// funnel.
func (c *Catalog) Browse(category, sortBy string) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	switch sortBy {
	case "price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// Shortlist applies the accumulated preferences to the catalog and returns
// the ranked result, truncated to at most three entries. It is pure: no side
// effects, deterministic given identical inputs and catalog ordering.
func (c *Catalog) Shortlist(prefs domain.Preferences) []domain.Product {
	return Shortlist(c.products, prefs)
}

// Shortlist filters products by the set preference fields (category and
// brand by case-insensitive equality, budget by inclusive range), sorts by
// the selected key with catalog order breaking ties, and truncates to three.
func Shortlist(products []domain.Product, prefs domain.Preferences) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if prefs.Category != "" && !strings.EqualFold(p.Category, prefs.Category) {
			continue
		}
		if prefs.Brand != "" && !strings.EqualFold(p.Brand, prefs.Brand) {
			continue
		}
		if prefs.Budget != nil && !prefs.Budget.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	switch prefs.Sort {
	case domain.SortPopularityDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PopularityScore > out[j].PopularityScore })
	case domain.SortRecencyDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}

	if len(out) > shortlistLimit {
		out = out[:shortlistLimit]
	}
	return out
}
