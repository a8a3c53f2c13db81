// Package parser maps a raw input line to a validated command.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"budgetbuddy/internal/command"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/validate"
)

type family struct {
	name    string
	pattern *regexp.Regexp
	build   func(args string) (command.Command, error)
}

// Parser holds the ordered family table. The first family whose prefix
// matches the line wins.
type Parser struct {
	families []family
}

// New builds a Parser. now is the clock used for defaulted dates; nil means
// time.Now.
func New(now func() time.Time) *Parser {
	v := validate.New(now)
	p := &Parser{}
	add(p, "exit", func(string) (command.Exit, error) { return command.Exit{}, nil })
	add(p, "help", func(string) (command.Help, error) { return command.Help{}, nil })
	add(p, "add expense", v.AddExpense)
	add(p, "edit expenses", validate.EditExpense)
	add(p, "delete expense", validate.DeleteExpense)
	add(p, "list expenses", validate.ListExpenses)
	add(p, "search expense", validate.SearchExpenses)
	add(p, "add income", v.AddIncome)
	add(p, "edit incomes", validate.EditIncome)
	add(p, "delete income", validate.DeleteIncome)
	add(p, "list incomes", validate.ListIncomes)
	add(p, "search income", validate.SearchIncomes)
	add(p, "add budget", validate.AddBudget)
	add(p, "list budget", validate.ListBudgets)
	add(p, "graph expenses", validate.GraphExpenses)
	add(p, "graph incomes", validate.GraphIncomes)
	add(p, "display expenses", validate.DisplayExpenses)
	add(p, "display incomes", validate.DisplayIncomes)
	return p
}

func (p *Parser) register(name string, build func(string) (command.Command, error)) {
	p.families = append(p.families, family{
		name:    name,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `(\s|$)`),
		build:   build,
	})
}

func add[T command.Command](p *Parser, name string, build func(string) (T, error)) {
	p.register(name, func(args string) (command.Command, error) {
		c, err := build(args)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Parse returns the command for line, or a *core.CommandError.
func (p *Parser) Parse(line string) (command.Command, error) {
	line = strings.TrimSpace(line)
	for _, f := range p.families {
		if f.pattern.MatchString(line) {
			return f.build(strings.TrimPrefix(line, f.name))
		}
	}
	return nil, core.WithMessage(core.ErrMalformedCommand, fmt.Sprintf("Unrecognized command: %s", line))
}
