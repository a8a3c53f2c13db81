package registry

import (
	"sync"

	"budgetbuddy/internal/core"
)

// Budgets is the append-only budget registry.
type Budgets struct {
	mu    sync.Mutex
	items []*core.Budget
}

// NewBudgets builds the budget registry from loaded records.
func NewBudgets(items []*core.Budget) *Budgets {
	return &Budgets{items: append([]*core.Budget(nil), items...)}
}

// Add appends b and returns the new count.
func (r *Budgets) Add(b *core.Budget) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, b)
	return len(r.items)
}

func (r *Budgets) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// All returns the budgets in registry order.
func (r *Budgets) All() []*core.Budget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*core.Budget(nil), r.items...)
}

// Filter returns the budgets matching keep, in registry order.
func (r *Budgets) Filter(keep func(*core.Budget) bool) []*core.Budget {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*core.Budget
	for _, b := range r.items {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Matching returns the budgets for month that apply to category.
func (r *Budgets) Matching(month core.YearMonth, category core.Category) []*core.Budget {
	return r.Filter(func(b *core.Budget) bool {
		return b.Month == month && b.AppliesTo(category)
	})
}
