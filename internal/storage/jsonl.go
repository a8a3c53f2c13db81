package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"budgetbuddy/internal/core"
)

// RecordType discriminates the lines of a snapshot file.
type RecordType string

const (
	RecordExpense RecordType = "expense"
	RecordIncome  RecordType = "income"
	RecordBudget  RecordType = "budget"
)

// line is the on-disk shape of every record. Field order is the JSON order.
type line struct {
	Record      RecordType `json:"record"`
	ID          string     `json:"id"`
	Amount      string     `json:"amount"`
	Category    string     `json:"category,omitempty"`
	Date        string     `json:"date,omitempty"`
	Month       string     `json:"month,omitempty"`
	Description string     `json:"description,omitempty"`
}

// EncodeSnapshot writes s as JSON Lines: expenses, then incomes, then
// budgets, each in registry order.
func EncodeSnapshot(w io.Writer, s core.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, e := range s.Expenses {
		if err := enc.Encode(line{
			Record:      RecordExpense,
			ID:          e.ID,
			Amount:      e.Amount.Exact(),
			Category:    string(e.Category),
			Date:        e.Date.Stored(),
			Description: e.Description,
		}); err != nil {
			return fmt.Errorf("encode expense %s: %w", e.ID, err)
		}
	}
	for _, i := range s.Incomes {
		if err := enc.Encode(line{
			Record:      RecordIncome,
			ID:          i.ID,
			Amount:      i.Amount.Exact(),
			Date:        i.Date.Stored(),
			Description: i.Description,
		}); err != nil {
			return fmt.Errorf("encode income %s: %w", i.ID, err)
		}
	}
	for _, b := range s.Budgets {
		if err := enc.Encode(line{
			Record:   RecordBudget,
			ID:       b.ID,
			Amount:   b.Amount.Exact(),
			Category: string(b.Category),
			Month:    b.Month.Stored(),
		}); err != nil {
			return fmt.Errorf("encode budget %s: %w", b.ID, err)
		}
	}
	return nil
}

// MarshalSnapshot is EncodeSnapshot into a byte slice.
func MarshalSnapshot(s core.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reads a JSON Lines snapshot. Blank lines are skipped; any
// other line that does not decode into a valid record fails the whole read.
func DecodeSnapshot(r io.Reader) (core.Snapshot, error) {
	var s core.Snapshot
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var l line
		if err := json.Unmarshal(raw, &l); err != nil {
			return core.Snapshot{}, fmt.Errorf("line %d: %w", n, err)
		}

		var err error
		switch l.Record {
		case RecordExpense:
			var e *core.Expense
			if e, err = l.expense(); err == nil {
				s.Expenses = append(s.Expenses, e)
			}
		case RecordIncome:
			var i *core.Income
			if i, err = l.income(); err == nil {
				s.Incomes = append(s.Incomes, i)
			}
		case RecordBudget:
			var b *core.Budget
			if b, err = l.budget(); err == nil {
				s.Budgets = append(s.Budgets, b)
			}
		default:
			err = fmt.Errorf("unknown record type %q", l.Record)
		}
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return core.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return s, nil
}

func (l line) expense() (*core.Expense, error) {
	amount, err := core.ParseAmount(l.Amount)
	if err != nil {
		return nil, err
	}
	date, err := core.ParseStoredDate(l.Date)
	if err != nil {
		return nil, err
	}
	e := &core.Expense{
		ID:          l.ID,
		Amount:      amount,
		Category:    core.Category(l.Category),
		Date:        date,
		Description: l.Description,
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid expense %s: %w", l.ID, err)
	}
	return e, nil
}

func (l line) income() (*core.Income, error) {
	amount, err := core.ParseAmount(l.Amount)
	if err != nil {
		return nil, err
	}
	date, err := core.ParseStoredDate(l.Date)
	if err != nil {
		return nil, err
	}
	i := &core.Income{ID: l.ID, Amount: amount, Date: date, Description: l.Description}
	if err := i.Validate(); err != nil {
		return nil, fmt.Errorf("invalid income %s: %w", l.ID, err)
	}
	return i, nil
}

func (l line) budget() (*core.Budget, error) {
	amount, err := core.ParseAmount(l.Amount)
	if err != nil {
		return nil, err
	}
	month, err := core.ParseStoredYearMonth(l.Month)
	if err != nil {
		return nil, err
	}
	b := &core.Budget{ID: l.ID, Amount: amount, Month: month, Category: core.Category(l.Category)}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid budget %s: %w", l.ID, err)
	}
	return b, nil
}
