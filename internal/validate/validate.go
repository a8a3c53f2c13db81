// Package validate turns the argument text of a command family into a
// validated request. Validators never touch a registry: they either return
// a complete request or a *core.CommandError describing the first problem.
//
// Mandatory fields are checked before anything is parsed, then fields are
// parsed in the fixed order amount, category, date.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"budgetbuddy/internal/command"
	"budgetbuddy/internal/core"
)

// Validator holds the clock used for defaulted dates.
type Validator struct {
	now func() time.Time
}

// New creates a Validator. A nil clock means time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// AddExpense validates `a/<amount> [c/<category>] [d/<dd/MM/yyyy>] <description...>`.
func (v *Validator) AddExpense(args string) (command.AddExpense, error) {
	f := tokenize(args, tagAmount, tagCategory, tagDate)
	if !f.has(tagAmount) {
		return command.AddExpense{}, missingAmount()
	}
	if len(f.positional) == 0 {
		return command.AddExpense{}, core.WithMessage(core.ErrMissingField, "No description provided.")
	}

	req := command.AddExpense{
		Category:    core.Uncategorized,
		Date:        core.DateOf(v.now()),
		Description: f.text(),
	}
	var err error
	if req.Amount, err = parseAmount(f.tags[tagAmount]); err != nil {
		return command.AddExpense{}, err
	}
	if f.has(tagCategory) {
		if req.Category, err = parseCategory(f.tags[tagCategory]); err != nil {
			return command.AddExpense{}, err
		}
	}
	if f.has(tagDate) {
		if req.Date, err = parseDate(f.tags[tagDate]); err != nil {
			return command.AddExpense{}, err
		}
	}
	return req, nil
}

// AddIncome validates `a/<amount> [d/<dd/MM/yyyy>] <description...>`.
func (v *Validator) AddIncome(args string) (command.AddIncome, error) {
	f := tokenize(args, tagAmount, tagDate)
	if !f.has(tagAmount) {
		return command.AddIncome{}, missingAmount()
	}
	if len(f.positional) == 0 {
		return command.AddIncome{}, core.WithMessage(core.ErrMissingField, "No description provided.")
	}

	req := command.AddIncome{Date: core.DateOf(v.now()), Description: f.text()}
	var err error
	if req.Amount, err = parseAmount(f.tags[tagAmount]); err != nil {
		return command.AddIncome{}, err
	}
	if f.has(tagDate) {
		if req.Date, err = parseDate(f.tags[tagDate]); err != nil {
			return command.AddIncome{}, err
		}
	}
	return req, nil
}

// AddBudget validates `a/<amount> m/<MM/yyyy> [c/<category>]`. Without c/ the
// budget covers all categories.
func AddBudget(args string) (command.AddBudget, error) {
	f := tokenize(args, tagAmount, tagMonth, tagCategory)
	if !f.has(tagAmount) {
		return command.AddBudget{}, missingAmount()
	}
	if !f.has(tagMonth) {
		return command.AddBudget{}, missingMonth()
	}
	if len(f.positional) > 0 {
		return command.AddBudget{}, usage("add budget a/<amount> m/MM/yyyy [c/CATEGORY]")
	}

	var req command.AddBudget
	var err error
	if req.Amount, err = parseAmount(f.tags[tagAmount]); err != nil {
		return command.AddBudget{}, err
	}
	if f.has(tagCategory) {
		if req.Category, err = parseCategory(f.tags[tagCategory]); err != nil {
			return command.AddBudget{}, err
		}
	}
	if req.Month, err = parseMonth(f.tags[tagMonth]); err != nil {
		return command.AddBudget{}, err
	}
	return req, nil
}

// EditExpense validates the index of `edit expenses <index>`.
func EditExpense(args string) (command.EditExpense, error) {
	i, err := parseIndex(args)
	return command.EditExpense{Index: i}, err
}

func EditIncome(args string) (command.EditIncome, error) {
	i, err := parseIndex(args)
	return command.EditIncome{Index: i}, err
}

func DeleteExpense(args string) (command.DeleteExpense, error) {
	i, err := parseIndex(args)
	return command.DeleteExpense{Index: i}, err
}

func DeleteIncome(args string) (command.DeleteIncome, error) {
	i, err := parseIndex(args)
	return command.DeleteIncome{Index: i}, err
}

// EditExpenseFields validates the field line of the edit dialog. Every field
// is optional; an absent field stays nil. All fields are parsed before the
// result is returned, so a rejected line changes nothing.
func EditExpenseFields(line string) (command.EditExpenseFields, error) {
	f := tokenize(line, tagAmount, tagCategory, tagDate)
	if len(f.positional) > 0 {
		return command.EditExpenseFields{}, unknownField(f.positional[0], "a/, c/ or d/")
	}

	var out command.EditExpenseFields
	if f.has(tagAmount) {
		m, err := parseAmount(f.tags[tagAmount])
		if err != nil {
			return command.EditExpenseFields{}, err
		}
		out.Amount = &m
	}
	if f.has(tagCategory) {
		c, err := parseCategory(f.tags[tagCategory])
		if err != nil {
			return command.EditExpenseFields{}, err
		}
		out.Category = &c
	}
	if f.has(tagDate) {
		d, err := parseDate(f.tags[tagDate])
		if err != nil {
			return command.EditExpenseFields{}, err
		}
		out.Date = &d
	}
	return out, nil
}

// EditIncomeFields is EditExpenseFields without a category.
func EditIncomeFields(line string) (command.EditIncomeFields, error) {
	f := tokenize(line, tagAmount, tagDate)
	if len(f.positional) > 0 {
		return command.EditIncomeFields{}, unknownField(f.positional[0], "a/ or d/")
	}

	var out command.EditIncomeFields
	if f.has(tagAmount) {
		m, err := parseAmount(f.tags[tagAmount])
		if err != nil {
			return command.EditIncomeFields{}, err
		}
		out.Amount = &m
	}
	if f.has(tagDate) {
		d, err := parseDate(f.tags[tagDate])
		if err != nil {
			return command.EditIncomeFields{}, err
		}
		out.Date = &d
	}
	return out, nil
}

// ListExpenses validates `[c/<category>] [m/<MM/yyyy>]`.
func ListExpenses(args string) (command.ListExpenses, error) {
	f := tokenize(args, tagCategory, tagMonth)
	if len(f.positional) > 0 {
		return command.ListExpenses{}, usage("list expenses [c/CATEGORY] [m/MM/yyyy]")
	}

	var req command.ListExpenses
	if f.has(tagCategory) {
		c, err := parseCategory(f.tags[tagCategory])
		if err != nil {
			return command.ListExpenses{}, err
		}
		req.Category = &c
	}
	if f.has(tagMonth) {
		ym, err := parseMonth(f.tags[tagMonth])
		if err != nil {
			return command.ListExpenses{}, err
		}
		req.Month = &ym
	}
	return req, nil
}

// ListIncomes validates `[m/<MM/yyyy>]`.
func ListIncomes(args string) (command.ListIncomes, error) {
	f := tokenize(args, tagMonth)
	if len(f.positional) > 0 {
		return command.ListIncomes{}, usage("list incomes [m/MM/yyyy]")
	}

	var req command.ListIncomes
	if f.has(tagMonth) {
		ym, err := parseMonth(f.tags[tagMonth])
		if err != nil {
			return command.ListIncomes{}, err
		}
		req.Month = &ym
	}
	return req, nil
}

// ListBudgets validates `[m/<MM/yyyy>] [c/<category>]`.
func ListBudgets(args string) (command.ListBudgets, error) {
	f := tokenize(args, tagMonth, tagCategory)
	if len(f.positional) > 0 {
		return command.ListBudgets{}, usage("list budget [m/MM/yyyy] [c/CATEGORY]")
	}

	var req command.ListBudgets
	if f.has(tagCategory) {
		c, err := parseCategory(f.tags[tagCategory])
		if err != nil {
			return command.ListBudgets{}, err
		}
		req.Category = &c
	}
	if f.has(tagMonth) {
		ym, err := parseMonth(f.tags[tagMonth])
		if err != nil {
			return command.ListBudgets{}, err
		}
		req.Month = &ym
	}
	return req, nil
}

// SearchExpenses takes the trimmed remainder as the keyword. An empty keyword
// is accepted and simply finds nothing.
func SearchExpenses(args string) (command.SearchExpenses, error) {
	return command.SearchExpenses{Keyword: strings.TrimSpace(args)}, nil
}

func SearchIncomes(args string) (command.SearchIncomes, error) {
	return command.SearchIncomes{Keyword: strings.TrimSpace(args)}, nil
}

// DisplayExpenses validates `m/<MM/yyyy> [c/<category>]`.
func DisplayExpenses(args string) (command.DisplayExpenses, error) {
	f := tokenize(args, tagMonth, tagCategory)
	if !f.has(tagMonth) {
		return command.DisplayExpenses{}, missingMonth()
	}
	if len(f.positional) > 0 {
		return command.DisplayExpenses{}, usage("display expenses m/MM/yyyy [c/CATEGORY]")
	}

	var req command.DisplayExpenses
	if f.has(tagCategory) {
		c, err := parseCategory(f.tags[tagCategory])
		if err != nil {
			return command.DisplayExpenses{}, err
		}
		req.Category = &c
	}
	month, err := parseMonth(f.tags[tagMonth])
	if err != nil {
		return command.DisplayExpenses{}, err
	}
	req.Month = month
	return req, nil
}

// DisplayIncomes validates `m/<MM/yyyy>`.
func DisplayIncomes(args string) (command.DisplayIncomes, error) {
	f := tokenize(args, tagMonth)
	if !f.has(tagMonth) {
		return command.DisplayIncomes{}, missingMonth()
	}
	if len(f.positional) > 0 {
		return command.DisplayIncomes{}, usage("display incomes m/MM/yyyy")
	}
	ym, err := parseMonth(f.tags[tagMonth])
	if err != nil {
		return command.DisplayIncomes{}, err
	}
	return command.DisplayIncomes{Month: ym}, nil
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// GraphExpenses validates `<yyyy>`.
func GraphExpenses(args string) (command.GraphExpenses, error) {
	y, err := parseYear(args, "graph expenses")
	return command.GraphExpenses{Year: y}, err
}

func GraphIncomes(args string) (command.GraphIncomes, error) {
	y, err := parseYear(args, "graph incomes")
	return command.GraphIncomes{Year: y}, err
}

func parseYear(args, family string) (int, error) {
	toks := strings.Fields(args)
	if len(toks) == 0 {
		return 0, core.WithMessage(core.ErrMissingField, fmt.Sprintf("No year provided. Use '%s <yyyy>'.", family))
	}
	if len(toks) > 1 || !yearPattern.MatchString(toks[0]) {
		return 0, core.WithMessage(core.ErrInvalidFieldValue,
			fmt.Sprintf("Invalid year: %s. Use '%s <yyyy>'.", strings.Join(toks, " "), family))
	}
	y, _ := strconv.Atoi(toks[0])
	return y, nil
}

func usage(format string) error {
	return core.WithMessage(core.ErrInvalidFieldValue, fmt.Sprintf("Invalid format. Use '%s'.", format))
}

func unknownField(tok, valid string) error {
	return core.WithMessage(core.ErrInvalidFieldValue, fmt.Sprintf("Unknown field: %s. Use %s.", tok, valid))
}
