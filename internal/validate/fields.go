package validate

import (
	"fmt"
	"strconv"
	"strings"

	"budgetbuddy/internal/core"
)

// Field sigils.
const (
	tagAmount   = "a/"
	tagCategory = "c/"
	tagDate     = "d/"
	tagMonth    = "m/"
)

// fields is a tokenized argument string: tagged values by sigil, then the
// remaining words in order.
type fields struct {
	tags       map[string]string
	positional []string
}

// tokenize splits args on whitespace. The first token starting with each
// allowed sigil is tagged. Every other token is positional, so a later
// "a/c" stays in the description.
func tokenize(args string, allowed ...string) fields {
	f := fields{tags: make(map[string]string)}
	for _, tok := range strings.Fields(args) {
		tag, ok := sigil(tok, allowed)
		if !ok || f.has(tag) {
			f.positional = append(f.positional, tok)
			continue
		}
		f.tags[tag] = strings.TrimPrefix(tok, tag)
	}
	return f
}

func sigil(tok string, allowed []string) (string, bool) {
	for _, tag := range allowed {
		if strings.HasPrefix(tok, tag) {
			return tag, true
		}
	}
	return "", false
}

func (f fields) has(tag string) bool {
	_, ok := f.tags[tag]
	return ok
}

func (f fields) text() string {
	return strings.Join(f.positional, " ")
}

func parseAmount(v string) (core.Money, error) {
	m, err := core.ParseAmount(v)
	if err != nil {
		return core.Money{}, core.WithMessage(core.ErrInvalidFieldValue,
			"Invalid amount format. Amount should be a positive number.")
	}
	if !m.IsPositive() {
		return core.Money{}, core.WithMessage(core.ErrInvalidFieldValue,
			fmt.Sprintf("Invalid amount: %s. Amount must be a positive value.", strings.TrimSpace(v)))
	}
	return m, nil
}

func parseCategory(v string) (core.Category, error) {
	c, err := core.ParseCategory(v)
	if err != nil {
		return "", core.WithMessage(core.ErrInvalidFieldValue,
			fmt.Sprintf("Invalid category: %s. Valid categories: %s", v, core.CategoryNames()))
	}
	return c, nil
}

func parseDate(v string) (core.Date, error) {
	d, err := core.ParseInputDate(v)
	if err != nil {
		return core.Date{}, core.WithMessage(core.ErrInvalidFieldValue, "Invalid date format. Use d/dd/MM/yyyy.")
	}
	return d, nil
}

func parseMonth(v string) (core.YearMonth, error) {
	ym, err := core.ParseInputYearMonth(v)
	if err != nil {
		return core.YearMonth{}, core.WithMessage(core.ErrInvalidFieldValue, "Invalid date format. Use m/MM/yyyy.")
	}
	return ym, nil
}

// parseIndex converts a 1-based display index to a 0-based position.
func parseIndex(args string) (int, error) {
	toks := strings.Fields(args)
	if len(toks) == 0 {
		return 0, core.WithMessage(core.ErrMissingField, "No index detected, try again with an index.")
	}
	n, err := strconv.Atoi(toks[0])
	if err != nil || n <= 0 || len(toks) > 1 {
		return 0, core.WithMessage(core.ErrInvalidFieldValue, "Index must be a valid number larger than 0.")
	}
	return n - 1, nil
}

func missingAmount() error {
	return core.WithMessage(core.ErrMissingField, "No amount provided. Use a/<amount>.")
}

func missingMonth() error {
	return core.WithMessage(core.ErrMissingField, "No month provided. Use m/MM/yyyy.")
}
