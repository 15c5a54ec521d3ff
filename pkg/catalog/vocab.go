package catalog

import (
	"strings"

	"github.com/stepedge/concierge/pkg/domain"
)

// The funnel vocabulary is enumerated at deploy time and is not
// user-extensible at runtime.

// Categories lists the known product categories, in prompt order.
func Categories() []string {
	return []string{"smartphone", "laptop", "tablet", "smartwatch", "headphones"}
}

// ValidCategory reports whether input (already lower-cased) names a known
// category.
func ValidCategory(input string) bool {
	for _, c := range Categories() {
		if c == input {
			return true
		}
	}
	return false
}

var categoryBrands = map[string][]string{
	"smartphone": {"apple", "samsung", "xiaomi", "oneplus"},
	"laptop":     {"dell", "hp", "asus", "lenovo", "microsoft", "apple"},
	"tablet":     {"apple", "samsung", "xiaomi", "lenovo"},
	"smartwatch": {"apple", "samsung", "garmin", "oneplus"},
	"headphones": {"sony", "sennheiser", "bose", "jbl"},
}

// Brands lists the brand set offered for a category.
func Brands(category string) []string {
	return categoryBrands[strings.ToLower(category)]
}

// ValidBrand reports whether input belongs to the category's brand set.
func ValidBrand(category, input string) bool {
	for _, b := range Brands(category) {
		if b == input {
			return true
		}
	}
	return false
}

// BudgetBand is a named, predefined closed price interval offered as a
// selectable option per category.
type BudgetBand struct {
	Label string
	Range domain.BudgetRange
}

var categoryBudgets = map[string][]BudgetBand{
	"smartphone": {
		{"300-800", domain.BudgetRange{Min: 300, Max: 800}},
		{"801-1200", domain.BudgetRange{Min: 801, Max: 1200}},
		{"1201-1800", domain.BudgetRange{Min: 1201, Max: 1800}},
		{"1801-2500", domain.BudgetRange{Min: 1801, Max: 2500}},
	},
	"laptop": {
		{"500-1000", domain.BudgetRange{Min: 500, Max: 1000}},
		{"1001-1500", domain.BudgetRange{Min: 1001, Max: 1500}},
		{"1501-2000", domain.BudgetRange{Min: 1501, Max: 2000}},
		{"2001-3000", domain.BudgetRange{Min: 2001, Max: 3000}},
	},
	"tablet": {
		{"200-500", domain.BudgetRange{Min: 200, Max: 500}},
		{"501-800", domain.BudgetRange{Min: 501, Max: 800}},
		{"801-1200", domain.BudgetRange{Min: 801, Max: 1200}},
		{"1201-1500", domain.BudgetRange{Min: 1201, Max: 1500}},
	},
	"smartwatch": {
		{"100-300", domain.BudgetRange{Min: 100, Max: 300}},
		{"301-500", domain.BudgetRange{Min: 301, Max: 500}},
		{"501-800", domain.BudgetRange{Min: 501, Max: 800}},
	},
	"headphones": {
		{"50-150", domain.BudgetRange{Min: 50, Max: 150}},
		{"151-300", domain.BudgetRange{Min: 151, Max: 300}},
		{"301-600", domain.BudgetRange{Min: 301, Max: 600}},
	},
}

// BudgetBands lists the budget bands offered for a category, in prompt order.
func BudgetBands(category string) []BudgetBand {
	return categoryBudgets[strings.ToLower(category)]
}

// ParseBudget matches input against the category's band labels. Currency
// symbols are stripped first, so "$1001-1500" and "$1001-$1500" are accepted
// identically to the symbol-free form.
func ParseBudget(category, input string) (domain.BudgetRange, bool) {
	cleaned := strings.ReplaceAll(input, "$", "")
	for _, band := range BudgetBands(category) {
		if band.Label == cleaned {
			return band.Range, true
		}
	}
	return domain.BudgetRange{}, false
}

// BudgetLabels renders the bands the way they are offered to the user,
// with currency symbols on both bounds ("$1001-$1500").
func BudgetLabels(category string) []string {
	bands := BudgetBands(category)
	labels := make([]string, len(bands))
	for i, band := range bands {
		labels[i] = "$" + strings.ReplaceAll(band.Label, "-", "-$")
	}
	return labels
}

var sortLabels = []struct {
	label string
	key   domain.SortKey
}{
	{"best seller", domain.SortPopularityDesc},
	{"new arrival", domain.SortRecencyDesc},
	{"price low to high", domain.SortPriceAsc},
	{"price high to low", domain.SortPriceDesc},
}

// SortOptions lists the selectable sort labels, in prompt order.
func SortOptions() []string {
	out := make([]string, len(sortLabels))
	for i, s := range sortLabels {
		out[i] = s.label
	}
	return out
}

// ParseSort maps a user-facing sort label to its sort key.
func ParseSort(input string) (domain.SortKey, bool) {
	for _, s := range sortLabels {
		if s.label == input {
			return s.key, true
		}
	}
	return "", false
}

// Capitalize upper-cases the first letter only, matching how brand and
// category names are echoed back in prompts.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
