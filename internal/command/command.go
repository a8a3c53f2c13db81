// Package command defines the closed set of validated requests the
// interpreter can produce. Each type is one user-facing operation; the
// executor package runs them.
package command

import "budgetbuddy/internal/core"

// Command is a validated request. The set of implementations is closed.
type Command interface {
	command()
	// Kind names the operation for logs and change messages.
	Kind() string
}

type (
	Exit struct{}
	Help struct{}

	AddExpense struct {
		Amount      core.Money
		Category    core.Category
		Date        core.Date
		Description string
	}

	// EditExpense only identifies the target; the fields are collected in a
	// second step and validated into EditExpenseFields.
	EditExpense struct {
		Index int // 0-based registry position
	}

	DeleteExpense struct {
		Index int // 0-based registry position
	}

	// ListExpenses filters by category and/or month; nil means no filter.
	ListExpenses struct {
		Category *core.Category
		Month    *core.YearMonth
	}

	SearchExpenses struct {
		Keyword string
	}

	// DisplayExpenses reports the total for a month, optionally one category.
	DisplayExpenses struct {
		Month    core.YearMonth
		Category *core.Category
	}

	GraphExpenses struct {
		Year int
	}

	AddIncome struct {
		Amount      core.Money
		Date        core.Date
		Description string
	}

	EditIncome struct {
		Index int
	}

	DeleteIncome struct {
		Index int
	}

	ListIncomes struct {
		Month *core.YearMonth
	}

	SearchIncomes struct {
		Keyword string
	}

	DisplayIncomes struct {
		Month core.YearMonth
	}

	GraphIncomes struct {
		Year int
	}

	AddBudget struct {
		Amount   core.Money
		Month    core.YearMonth
		Category core.Category // empty for all categories
	}

	ListBudgets struct {
		Month    *core.YearMonth
		Category *core.Category
	}
)

// EditExpenseFields carries the optional new values of an expense edit.
// A nil field means "leave unchanged".
type EditExpenseFields struct {
	Amount   *core.Money
	Category *core.Category
	Date     *core.Date
}

// EditIncomeFields carries the optional new values of an income edit.
type EditIncomeFields struct {
	Amount *core.Money
	Date   *core.Date
}

// Empty reports whether no field was supplied.
func (f EditExpenseFields) Empty() bool {
	return f.Amount == nil && f.Category == nil && f.Date == nil
}

// Apply writes the supplied fields onto e.
func (f EditExpenseFields) Apply(e *core.Expense) {
	if f.Amount != nil {
		e.Amount = *f.Amount
	}
	if f.Category != nil {
		e.Category = *f.Category
	}
	if f.Date != nil {
		e.Date = *f.Date
	}
}

func (f EditIncomeFields) Empty() bool {
	return f.Amount == nil && f.Date == nil
}

func (f EditIncomeFields) Apply(i *core.Income) {
	if f.Amount != nil {
		i.Amount = *f.Amount
	}
	if f.Date != nil {
		i.Date = *f.Date
	}
}

func (Exit) command()            {}
func (Help) command()            {}
func (AddExpense) command()      {}
func (EditExpense) command()     {}
func (DeleteExpense) command()   {}
func (ListExpenses) command()    {}
func (SearchExpenses) command()  {}
func (DisplayExpenses) command() {}
func (GraphExpenses) command()   {}
func (AddIncome) command()       {}
func (EditIncome) command()      {}
func (DeleteIncome) command()    {}
func (ListIncomes) command()     {}
func (SearchIncomes) command()   {}
func (DisplayIncomes) command()  {}
func (GraphIncomes) command()    {}
func (AddBudget) command()       {}
func (ListBudgets) command()     {}

func (Exit) Kind() string            { return "exit" }
func (Help) Kind() string            { return "help" }
func (AddExpense) Kind() string      { return "add_expense" }
func (EditExpense) Kind() string     { return "edit_expense" }
func (DeleteExpense) Kind() string   { return "delete_expense" }
func (ListExpenses) Kind() string    { return "list_expenses" }
func (SearchExpenses) Kind() string  { return "search_expenses" }
func (DisplayExpenses) Kind() string { return "display_expenses" }
func (GraphExpenses) Kind() string   { return "graph_expenses" }
func (AddIncome) Kind() string       { return "add_income" }
func (EditIncome) Kind() string      { return "edit_income" }
func (DeleteIncome) Kind() string    { return "delete_income" }
func (ListIncomes) Kind() string     { return "list_incomes" }
func (SearchIncomes) Kind() string   { return "search_incomes" }
func (DisplayIncomes) Kind() string  { return "display_incomes" }
func (GraphIncomes) Kind() string    { return "graph_incomes" }
func (AddBudget) Kind() string       { return "add_budget" }
func (ListBudgets) Kind() string     { return "list_budgets" }

// IsExit reports whether c ends the run loop.
func IsExit(c Command) bool {
	_, ok := c.(Exit)
	return ok
}

// Mutates reports whether c can change registry contents.
func Mutates(c Command) bool {
	switch c.(type) {
	case AddExpense, EditExpense, DeleteExpense, AddIncome, EditIncome, DeleteIncome, AddBudget:
		return true
	default:
		return false
	}
}
