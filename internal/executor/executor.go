// Package executor runs validated commands against the registries and
// writes the user-facing result.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/command"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/graph"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/registry"
	"budgetbuddy/internal/validate"
)

// Prompter asks the user for one more line, used by the edit dialog.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// Config wires an Executor.
type Config struct {
	Out        io.Writer
	Prompter   Prompter
	Expenses   *registry.Expenses
	Incomes    *registry.Incomes
	Budgets    *registry.Budgets
	Currency   string
	GraphWidth int
}

// Executor carries out commands. It is not safe for concurrent use by
// multiple dialogs.
type Executor struct {
	out        io.Writer
	prompter   Prompter
	expenses   *registry.Expenses
	incomes    *registry.Incomes
	budgets    *registry.Budgets
	reconciler *budget.Reconciler
	chart      graph.Chart
	currency   string
	newID      func() string
}

func New(cfg Config) *Executor {
	return &Executor{
		out:        cfg.Out,
		prompter:   cfg.Prompter,
		expenses:   cfg.Expenses,
		incomes:    cfg.Incomes,
		budgets:    cfg.Budgets,
		reconciler: budget.NewReconciler(cfg.Expenses, cfg.Budgets, cfg.Currency),
		chart:      graph.Chart{Width: cfg.GraphWidth, Currency: cfg.Currency},
		currency:   cfg.Currency,
		newID:      core.NewID,
	}
}

// Execute runs cmd. A returned error is either a *core.CommandError meant for
// the user or a failure of the edit dialog's input.
func (x *Executor) Execute(ctx context.Context, cmd command.Command) error {
	slog.DebugContext(ctx, "Executing command",
		log.FieldOperation, log.OpExecute,
		log.FieldCommand, cmd.Kind())

	switch c := cmd.(type) {
	case command.Exit:
		return nil
	case command.Help:
		x.show(HelpText)
		return nil

	case command.AddExpense:
		return x.addExpense(c)
	case command.EditExpense:
		return x.editExpense(ctx, c)
	case command.DeleteExpense:
		return x.deleteExpense(c)
	case command.ListExpenses:
		x.listExpenses(c)
		return nil
	case command.SearchExpenses:
		x.showExpenses(x.expenses.Search(c.Keyword))
		return nil
	case command.DisplayExpenses:
		x.displayExpenses(c)
		return nil
	case command.GraphExpenses:
		x.show(x.chart.Render("expenses", c.Year, core.YearTotals(c.Year, x.expenses.All())))
		return nil

	case command.AddIncome:
		return x.addIncome(c)
	case command.EditIncome:
		return x.editIncome(ctx, c)
	case command.DeleteIncome:
		return x.deleteIncome(c)
	case command.ListIncomes:
		x.listIncomes(c)
		return nil
	case command.SearchIncomes:
		x.showIncomes(x.incomes.Search(c.Keyword))
		return nil
	case command.DisplayIncomes:
		x.show(fmt.Sprintf("Your incomes for %s is %s", c.Month, x.incomes.MonthlyTotal(c.Month).Format(x.currency)))
		return nil
	case command.GraphIncomes:
		x.show(x.chart.Render("incomes", c.Year, core.YearTotals(c.Year, x.incomes.All())))
		return nil

	case command.AddBudget:
		return x.addBudget(c)
	case command.ListBudgets:
		x.listBudgets(c)
		return nil

	default:
		return core.WithMessage(core.ErrMalformedCommand, fmt.Sprintf("Unsupported command: %s", cmd.Kind()))
	}
}

func (x *Executor) addExpense(c command.AddExpense) error {
	e := &core.Expense{
		ID:          x.newID(),
		Amount:      c.Amount,
		Category:    c.Category,
		Date:        c.Date,
		Description: c.Description,
	}
	if err := e.Validate(); err != nil {
		return core.Wrap(core.ErrInvalidFieldValue, err)
	}
	n := x.expenses.Add(e)
	slog.Debug("Record added", log.FieldCommand, c.Kind(), log.FieldRecordID, e.ID)
	x.show(fmt.Sprintf("The following expense transaction has been added:\n%s\nYou have %d expense transaction(s) in total.\n%s",
		e.Format(x.currency), n, x.reconciler.Render(e.Date, e.Category)))
	return nil
}

func (x *Executor) deleteExpense(c command.DeleteExpense) error {
	e, err := x.expenses.Delete(c.Index)
	if err != nil {
		return err
	}
	x.show(fmt.Sprintf("The following expense transaction has been deleted:\n%s\nYou have %d expense transaction(s) in total.\n%s",
		e.Format(x.currency), x.expenses.Len(), x.reconciler.Render(e.Date, e.Category)))
	return nil
}

func (x *Executor) editExpense(ctx context.Context, c command.EditExpense) error {
	e, err := x.expenses.Get(c.Index)
	if err != nil {
		return err
	}
	line, err := x.prompter.Prompt(ctx, "Edit the following fields as follows: Amount: a/, Category: c/, Date: d/\n"+
		"Currently Editing Entry:\n"+e.Format(x.currency))
	if err != nil {
		return fmt.Errorf("read edit fields: %w", err)
	}
	fields, err := validate.EditExpenseFields(line)
	if err != nil {
		return err
	}
	if fields.Empty() {
		x.show("No fields given, expense left unchanged.")
		return nil
	}
	e, err = x.expenses.Update(c.Index, fields.Apply)
	if err != nil {
		return err
	}
	x.show("Edited Expense:\n" + e.Format(x.currency))
	return nil
}

func (x *Executor) listExpenses(c command.ListExpenses) {
	x.showExpenses(x.expenses.Filter(func(e *core.Expense) bool {
		if c.Category != nil && e.Category != *c.Category {
			return false
		}
		if c.Month != nil && e.Bucket() != *c.Month {
			return false
		}
		return true
	}))
}

func (x *Executor) displayExpenses(c command.DisplayExpenses) {
	if c.Category != nil {
		var total core.Money
		for _, e := range x.expenses.InMonth(c.Month) {
			if e.Category == *c.Category {
				total = total.Add(e.Amount)
			}
		}
		x.show(fmt.Sprintf("Your %s expenses for %s is %s", *c.Category, c.Month, total.Format(x.currency)))
		return
	}

	overview := core.OverviewOf(c.Month, x.expenses.InMonth(c.Month))
	var b strings.Builder
	fmt.Fprintf(&b, "Your expenses for %s is %s", c.Month, overview.Total.Format(x.currency))
	for _, ca := range overview.ByCategory {
		fmt.Fprintf(&b, "\n  %s: %s", ca.Category, ca.Amount.Format(x.currency))
	}
	x.show(b.String())
}

func (x *Executor) addIncome(c command.AddIncome) error {
	i := &core.Income{
		ID:          x.newID(),
		Amount:      c.Amount,
		Date:        c.Date,
		Description: c.Description,
	}
	if err := i.Validate(); err != nil {
		return core.Wrap(core.ErrInvalidFieldValue, err)
	}
	n := x.incomes.Add(i)
	slog.Debug("Record added", log.FieldCommand, c.Kind(), log.FieldRecordID, i.ID)
	x.show(fmt.Sprintf("The following income transaction has been added:\n%s\nYou have %d income transaction(s) in total.",
		i.Format(x.currency), n))
	return nil
}

func (x *Executor) deleteIncome(c command.DeleteIncome) error {
	i, err := x.incomes.Delete(c.Index)
	if err != nil {
		return err
	}
	x.show(fmt.Sprintf("The following income transaction has been deleted:\n%s\nYou have %d income transaction(s) in total.",
		i.Format(x.currency), x.incomes.Len()))
	return nil
}

func (x *Executor) editIncome(ctx context.Context, c command.EditIncome) error {
	i, err := x.incomes.Get(c.Index)
	if err != nil {
		return err
	}
	line, err := x.prompter.Prompt(ctx, "Edit the following fields as follows: Amount: a/, Date: d/\n"+
		"Currently Editing Entry:\n"+i.Format(x.currency))
	if err != nil {
		return fmt.Errorf("read edit fields: %w", err)
	}
	fields, err := validate.EditIncomeFields(line)
	if err != nil {
		return err
	}
	if fields.Empty() {
		x.show("No fields given, income left unchanged.")
		return nil
	}
	i, err = x.incomes.Update(c.Index, fields.Apply)
	if err != nil {
		return err
	}
	x.show("Edited Income:\n" + i.Format(x.currency))
	return nil
}

func (x *Executor) listIncomes(c command.ListIncomes) {
	if c.Month == nil {
		x.showIncomes(x.incomes.All())
		return
	}
	x.showIncomes(x.incomes.InMonth(*c.Month))
}

func (x *Executor) addBudget(c command.AddBudget) error {
	b := &core.Budget{
		ID:       x.newID(),
		Amount:   c.Amount,
		Month:    c.Month,
		Category: c.Category,
	}
	if err := b.Validate(); err != nil {
		return core.Wrap(core.ErrInvalidFieldValue, err)
	}
	n := x.budgets.Add(b)
	slog.Debug("Record added", log.FieldCommand, c.Kind(), log.FieldRecordID, b.ID)
	x.show(fmt.Sprintf("The following budget has been added:\n%s\nYou have %d budget(s) in total.",
		b.Format(x.currency), n))
	return nil
}

func (x *Executor) listBudgets(c command.ListBudgets) {
	found := x.budgets.Filter(func(b *core.Budget) bool {
		if c.Month != nil && b.Month != *c.Month {
			return false
		}
		if c.Category != nil && b.Category != *c.Category {
			return false
		}
		return true
	})
	if len(found) == 0 {
		x.show("No budget found with given parameters, try again with a different parameter.")
		return
	}
	x.show(strings.TrimSuffix(registry.Enumerate(found, func(b *core.Budget) string {
		return b.Format(x.currency)
	}), "\n"))
}

func (x *Executor) showExpenses(records []*core.Expense) {
	if len(records) == 0 {
		x.show(emptyResult("expense"))
		return
	}
	x.show(strings.TrimSuffix(registry.Enumerate(records, func(e *core.Expense) string {
		return e.Format(x.currency)
	}), "\n"))
}

func (x *Executor) showIncomes(records []*core.Income) {
	if len(records) == 0 {
		x.show(emptyResult("income"))
		return
	}
	x.show(strings.TrimSuffix(registry.Enumerate(records, func(i *core.Income) string {
		return i.Format(x.currency)
	}), "\n"))
}

func emptyResult(noun string) string {
	return fmt.Sprintf("No %s entry with given parameters found, try again with a different parameter.", noun)
}

func (x *Executor) show(msg string) {
	fmt.Fprintln(x.out, msg)
}
