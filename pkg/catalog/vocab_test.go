package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/domain"
)

func TestVocab_Categories(t *testing.T) {
	assert.Equal(t, []string{"smartphone", "laptop", "tablet", "smartwatch", "headphones"}, catalog.Categories())

	assert.True(t, catalog.ValidCategory("laptop"))
	assert.False(t, catalog.ValidCategory("toaster"))
}

func TestVocab_Brands(t *testing.T) {
	assert.Contains(t, catalog.Brands("laptop"), "dell")
	assert.Contains(t, catalog.Brands("Laptop"), "dell", "Category lookup is case-insensitive")
	assert.Empty(t, catalog.Brands("toaster"))

	assert.True(t, catalog.ValidBrand("laptop", "dell"))
	assert.False(t, catalog.ValidBrand("laptop", "sony"))
	assert.False(t, catalog.ValidBrand("headphones", "dell"), "Brand sets are per category")
}

func TestVocab_ParseBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.BudgetRange
		ok    bool
	}{
		{"Plain Label", "1001-1500", domain.BudgetRange{Min: 1001, Max: 1500}, true},
		{"Single Dollar Sign", "$1001-1500", domain.BudgetRange{Min: 1001, Max: 1500}, true},
		{"Both Dollar Signs", "$1001-$1500", domain.BudgetRange{Min: 1001, Max: 1500}, true},
		{"Wrong Category Band", "50-150", domain.BudgetRange{}, false},
		{"Free Text", "around a thousand", domain.BudgetRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := catalog.ParseBudget("laptop", tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestVocab_BudgetLabels(t *testing.T) {
	labels := catalog.BudgetLabels("laptop")
	require.NotEmpty(t, labels)
	assert.Equal(t, "$500-$1000", labels[0])
	assert.Contains(t, labels, "$1001-$1500")

	// Every displayed label must parse back to its own band.
	for i, band := range catalog.BudgetBands("laptop") {
		got, ok := catalog.ParseBudget("laptop", labels[i])
		require.True(t, ok, "Label %q should round-trip", labels[i])
		assert.Equal(t, band.Range, got)
	}
}

func TestVocab_ParseSort(t *testing.T) {
	key, ok := catalog.ParseSort("best seller")
	require.True(t, ok)
	assert.Equal(t, domain.SortPopularityDesc, key)

	key, ok = catalog.ParseSort("price low to high")
	require.True(t, ok)
	assert.Equal(t, domain.SortPriceAsc, key)

	_, ok = catalog.ParseSort("cheapest")
	assert.False(t, ok)

	assert.Equal(t, []string{"best seller", "new arrival", "price low to high", "price high to low"}, catalog.SortOptions())
}

func TestVocab_Capitalize(t *testing.T) {
	assert.Equal(t, "Laptop", catalog.Capitalize("laptop"))
	assert.Equal(t, "", catalog.Capitalize(""))
	assert.Equal(t, "Dell", catalog.Capitalize("Dell"))
}
