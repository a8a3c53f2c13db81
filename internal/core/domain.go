package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type (
	Expense struct {
		ID          string
		Amount      Money
		Category    Category
		Date        Date
		Description string
	}

	Income struct {
		ID          string
		Amount      Money
		Date        Date
		Description string
	}

	// Budget caps spending for one month. An empty Category means the budget
	// applies to all categories.
	Budget struct {
		ID       string
		Amount   Money
		Month    YearMonth
		Category Category
	}

	// Snapshot is the full persisted state, each slice in registry order.
	Snapshot struct {
		Expenses []*Expense
		Incomes  []*Income
		Budgets  []*Budget
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyID          = errors.New("empty id")
)

// NewID returns a fresh stable record identifier.
func NewID() string {
	return uuid.NewString()
}

func (e Expense) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// Bucket returns the month the expense is counted in.
func (e Expense) Bucket() YearMonth { return YearMonthOf(e.Date) }

// Value returns the expense amount.
func (e Expense) Value() Money { return e.Amount }

// Text returns the immutable description.
func (e Expense) Text() string { return e.Description }

// Format renders the expense for display with the given currency.
func (e Expense) Format(currency string) string {
	return fmt.Sprintf("Description: %s | Amount: %s | Date: %s | Category: %s",
		e.Description, e.Amount.Format(currency), e.Date, e.Category)
}

func (i Income) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(i.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

func (i Income) Bucket() YearMonth { return YearMonthOf(i.Date) }
func (i Income) Value() Money      { return i.Amount }
func (i Income) Text() string      { return i.Description }

// Format renders the income for display with the given currency.
func (i Income) Format(currency string) string {
	return fmt.Sprintf("Description: %s | Amount: %s | Date: %s",
		i.Description, i.Amount.Format(currency), i.Date)
}

func (b Budget) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if b.Month.IsZero() {
		return errors.New("budget month cannot be zero")
	}
	if !b.AllCategories() && !b.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// AllCategories reports whether the budget has no category scope.
func (b Budget) AllCategories() bool {
	return b.Category == ""
}

// AppliesTo reports whether an expense of category c counts against b.
func (b Budget) AppliesTo(c Category) bool {
	return b.AllCategories() || b.Category == c
}

// Scope names the budget's category scope for display.
func (b Budget) Scope() string {
	if b.AllCategories() {
		return "ALL CATEGORIES"
	}
	return string(b.Category)
}

// Format renders the budget for display with the given currency.
func (b Budget) Format(currency string) string {
	return fmt.Sprintf("Month: %s | Amount: %s | Category: %s",
		b.Month, b.Amount.Format(currency), b.Scope())
}
