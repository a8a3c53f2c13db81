// Package registry holds the ordered in-memory collections of expenses,
// incomes and budgets.
//
// A record's identity towards the user is its position in the collection:
// deleting position i shifts every later record down by one. Positions are
// 0-based here; the command layer converts the 1-based display numbers.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"budgetbuddy/internal/core"
)

// Entry is what a registry needs to know about its records.
type Entry interface {
	Bucket() core.YearMonth
	Value() core.Money
	Text() string
}

// Registry is an ordered, mutex-guarded collection of records.
type Registry[T Entry] struct {
	mu    sync.Mutex
	noun  string
	items []T
}

// Expenses and Incomes are the two transaction registries.
type (
	Expenses = Registry[*core.Expense]
	Incomes  = Registry[*core.Income]
)

// NewExpenses builds the expense registry from loaded records.
func NewExpenses(items []*core.Expense) *Expenses {
	return newRegistry("expense", items)
}

// NewIncomes builds the income registry from loaded records.
func NewIncomes(items []*core.Income) *Incomes {
	return newRegistry("income", items)
}

func newRegistry[T Entry](noun string, items []T) *Registry[T] {
	return &Registry[T]{noun: noun, items: append([]T(nil), items...)}
}

// Add appends r and returns the new count.
func (r *Registry[T]) Add(item T) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return len(r.items)
}

// Get returns the record at index.
func (r *Registry[T]) Get(index int) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return r.items[index], nil
}

// Delete removes the record at index and returns it.
func (r *Registry[T]) Delete(index int) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	removed := r.items[index]
	r.items = append(r.items[:index], r.items[index+1:]...)
	return removed, nil
}

// Update applies fn to the record at index while holding the lock.
func (r *Registry[T]) Update(index int, fn func(T)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	fn(r.items[index])
	return r.items[index], nil
}

// Len returns the current count.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// All returns the records in registry order.
func (r *Registry[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.items...)
}

// Filter returns the records matching keep, in registry order.
func (r *Registry[T]) Filter(keep func(T) bool) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// InMonth returns the records whose date falls in ym.
func (r *Registry[T]) InMonth(ym core.YearMonth) []T {
	return r.Filter(func(it T) bool { return it.Bucket() == ym })
}

// Search returns records whose description contains keyword, ignoring case.
// An empty keyword matches nothing.
func (r *Registry[T]) Search(keyword string) []T {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	return r.Filter(func(it T) bool {
		return strings.Contains(strings.ToLower(it.Text()), keyword)
	})
}

// MonthlyTotal sums the amounts of records dated in ym; zero when none.
func (r *Registry[T]) MonthlyTotal(ym core.YearMonth) core.Money {
	var total core.Money
	for _, it := range r.InMonth(ym) {
		total = total.Add(it.Value())
	}
	return total
}

// Noun names the record kind, e.g. "expense".
func (r *Registry[T]) Noun() string {
	return r.noun
}

func (r *Registry[T]) checkIndex(index int) error {
	if index < 0 || index >= len(r.items) {
		return core.WithMessage(core.ErrIndexOutOfRange, fmt.Sprintf(
			"Input index is larger than the number of %ss (%d). Try with a smaller index.", r.noun, len(r.items)))
	}
	return nil
}

// Enumerate renders records as a 1-based numbered list. The numbers are for
// display only and are not registry positions when records were filtered.
func Enumerate[T any](records []T, format func(T) string) string {
	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format(rec))
	}
	return b.String()
}
