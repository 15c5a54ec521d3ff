package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepedge/concierge/pkg/domain"
)

func TestBudgetRange_Contains(t *testing.T) {
	b := domain.BudgetRange{Min: 1001, Max: 1500}

	assert.True(t, b.Contains(1001), "Lower bound is inclusive")
	assert.True(t, b.Contains(1500), "Upper bound is inclusive")
	assert.True(t, b.Contains(1299.99))
	assert.False(t, b.Contains(1000.99))
	assert.False(t, b.Contains(1500.01))
}

func TestBudgetRange_Label(t *testing.T) {
	assert.Equal(t, "$1001-$1500", domain.BudgetRange{Min: 1001, Max: 1500}.Label())
}

func TestPreferences_Complete(t *testing.T) {
	p := domain.Preferences{}
	assert.False(t, p.Complete())

	p.Category = "laptop"
	p.Brand = "dell"
	assert.False(t, p.Complete())

	p.Budget = &domain.BudgetRange{Min: 1001, Max: 1500}
	assert.False(t, p.Complete())

	p.Sort = domain.SortPopularityDesc
	assert.True(t, p.Complete())
}

func TestStep_Known(t *testing.T) {
	for _, s := range domain.Steps() {
		assert.True(t, s.Known(), "Step %q should be known", s)
	}
	assert.False(t, domain.Step("teleport").Known())
}
