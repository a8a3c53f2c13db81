// Package budget reconciles monthly budgets against recorded expenses.
//
// Budgets and expenses are never linked; each call rescans both registries
// and matches on (month, category), so the result is always consistent with
// the current registry contents.
package budget

import (
	"fmt"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/registry"
)

// Remaining is one budget and what is left of it. Left is negative when the
// budget is overspent.
type Remaining struct {
	Budget *core.Budget
	Spent  core.Money
	Left   core.Money
}

// Reconciler computes remaining budgets.
type Reconciler struct {
	expenses *registry.Expenses
	budgets  *registry.Budgets
	currency string
}

func NewReconciler(expenses *registry.Expenses, budgets *registry.Budgets, currency string) *Reconciler {
	return &Reconciler{expenses: expenses, budgets: budgets, currency: currency}
}

// Remaining returns, for every budget of date's month that applies to
// category, the amount left after the expenses it covers.
func (r *Reconciler) Remaining(date core.Date, category core.Category) []Remaining {
	month := core.YearMonthOf(date)
	matching := r.budgets.Matching(month, category)
	if len(matching) == 0 {
		return nil
	}
	inMonth := r.expenses.InMonth(month)

	out := make([]Remaining, 0, len(matching))
	for _, b := range matching {
		var spent core.Money
		for _, e := range inMonth {
			if b.AppliesTo(e.Category) {
				spent = spent.Add(e.Amount)
			}
		}
		out = append(out, Remaining{Budget: b, Spent: spent, Left: b.Amount.Sub(spent)})
	}
	return out
}

// Render returns one line per matching budget, or a neutral message when
// no budget covers the month and category.
func (r *Reconciler) Render(date core.Date, category core.Category) string {
	month := core.YearMonthOf(date)
	rem := r.Remaining(date, category)
	if len(rem) == 0 {
		return fmt.Sprintf("No budget set for %s in %s.", category, month)
	}
	var b strings.Builder
	for i, x := range rem {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Remaining budget for %s (%s): %s", month, x.Budget.Scope(), x.Left.Format(r.currency))
		if x.Left.IsNegative() {
			b.WriteString(" (over budget)")
		}
	}
	return b.String()
}
