package validate

import (
	"errors"
	"testing"
	"time"

	"budgetbuddy/internal/core"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)
}

func TestAddExpense(t *testing.T) {
	v := New(fixedClock)

	tests := []struct {
		name     string
		args     string
		wantKind *core.CommandError
		wantMsg  string
	}{
		{name: "valid all fields", args: "a/50 c/food d/01/03/2024 lunch with team"},
		{name: "valid defaults", args: "a/12.5 coffee"},
		{name: "missing amount", args: "c/FOOD lunch", wantKind: core.ErrMissingField, wantMsg: "No amount provided. Use a/<amount>."},
		{name: "missing description", args: "a/50 c/FOOD", wantKind: core.ErrMissingField, wantMsg: "No description provided."},
		{name: "empty", args: "", wantKind: core.ErrMissingField},
		{name: "zero amount", args: "a/0 lunch", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid amount: 0. Amount must be a positive value."},
		{name: "negative amount", args: "a/-5 lunch", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid amount: -5. Amount must be a positive value."},
		{name: "non-numeric amount", args: "a/abc lunch", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid amount format. Amount should be a positive number."},
		{name: "bad category", args: "a/5 c/PETS lunch", wantKind: core.ErrInvalidFieldValue,
			wantMsg: "Invalid category: PETS. Valid categories: FOOD, TRANSPORT, UTILITIES, ENTERTAINMENT, EDUCATION, OTHERS, UNCATEGORIZED"},
		{name: "bad date", args: "a/5 d/2024-03-01 lunch", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid date format. Use d/dd/MM/yyyy."},
		{name: "impossible date", args: "a/5 d/31/02/2024 lunch", wantKind: core.ErrInvalidFieldValue},
		{name: "amount checked before category", args: "a/x c/PETS lunch", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid amount format. Amount should be a positive number."},
		{name: "category checked before date", args: "a/5 c/PETS d/bad lunch", wantKind: core.ErrInvalidFieldValue,
			wantMsg: "Invalid category: PETS. Valid categories: FOOD, TRANSPORT, UTILITIES, ENTERTAINMENT, EDUCATION, OTHERS, UNCATEGORIZED"},
		{name: "repeated tag is description", args: "a/5 a/6 lunch"},
		{name: "repeated category is description", args: "a/5 c/food c/transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.AddExpense(tt.args)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("error = %v, want kind %s", err, tt.wantKind.Kind)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestAddExpenseValues(t *testing.T) {
	v := New(fixedClock)

	req, err := v.AddExpense("a/50 c/food d/01/03/2024 lunch  with team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.Amount.Equal(core.MustMoney("50")) || req.Category != core.Food ||
		req.Date != core.NewDate(2024, 3, 1) || req.Description != "lunch with team" {
		t.Fatalf("unexpected request %+v", req)
	}

	req, err = v.AddExpense("a/120 c/utilities a/c repair")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.Amount.Equal(core.MustMoney("120")) || req.Category != core.Utilities || req.Description != "a/c repair" {
		t.Errorf("later a/ should stay in the description, got %+v", req)
	}

	req, err = v.AddExpense("a/3 coffee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Category != core.Uncategorized {
		t.Errorf("category = %s, want UNCATEGORIZED", req.Category)
	}
	if req.Date != core.NewDate(2024, 3, 9) {
		t.Errorf("date = %s, want today 09/03/2024", req.Date)
	}
}

func TestAddIncome(t *testing.T) {
	v := New(fixedClock)

	req, err := v.AddIncome("a/1000 d/25/03/2024 salary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.Amount.Equal(core.MustMoney("1000")) || req.Description != "salary" {
		t.Fatalf("unexpected request %+v", req)
	}

	// c/ is not an income field, so it is part of the description.
	req, err = v.AddIncome("a/10 c/FOOD refund")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Description != "c/FOOD refund" {
		t.Errorf("description = %q", req.Description)
	}

	if _, err := v.AddIncome("salary"); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("missing amount error = %v", err)
	}
}

func TestAddBudget(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		wantCat  core.Category
		wantKind *core.CommandError
		wantMsg  string
	}{
		{name: "category budget", args: "a/100 m/03/2024 c/FOOD", wantCat: core.Food},
		{name: "all categories", args: "a/500 m/03/2024"},
		{name: "missing month", args: "a/100", wantKind: core.ErrMissingField, wantMsg: "No month provided. Use m/MM/yyyy."},
		{name: "missing amount", args: "m/03/2024", wantKind: core.ErrMissingField},
		{name: "bad month", args: "a/100 m/13/2024", wantKind: core.ErrInvalidFieldValue, wantMsg: "Invalid date format. Use m/MM/yyyy."},
		{name: "zero amount", args: "a/0 m/03/2024", wantKind: core.ErrInvalidFieldValue},
		{name: "stray word", args: "a/100 m/03/2024 groceries", wantKind: core.ErrInvalidFieldValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := AddBudget(tt.args)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("error = %v, want kind %s", err, tt.wantKind.Kind)
				}
				if tt.wantMsg != "" && err.Error() != tt.wantMsg {
					t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Category != tt.wantCat || req.Month != core.NewYearMonth(2024, 3) {
				t.Errorf("unexpected request %+v", req)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		args     string
		want     int
		wantKind *core.CommandError
	}{
		{args: "1", want: 0},
		{args: " 12 ", want: 11},
		{args: "", wantKind: core.ErrMissingField},
		{args: "0", wantKind: core.ErrInvalidFieldValue},
		{args: "-3", wantKind: core.ErrInvalidFieldValue},
		{args: "two", wantKind: core.ErrInvalidFieldValue},
		{args: "1 2", wantKind: core.ErrInvalidFieldValue},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			req, err := DeleteExpense(tt.args)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("error = %v, want kind %s", err, tt.wantKind.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Index != tt.want {
				t.Errorf("index = %d, want %d", req.Index, tt.want)
			}
		})
	}
}

func TestEditExpenseFields(t *testing.T) {
	f, err := EditExpenseFields("")
	if err != nil || !f.Empty() {
		t.Fatalf("empty line should give empty fields, got %+v, %v", f, err)
	}

	f, err = EditExpenseFields("a/70 d/02/03/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Amount == nil || !f.Amount.Equal(core.MustMoney("70")) {
		t.Errorf("amount = %v, want 70", f.Amount)
	}
	if f.Category != nil {
		t.Errorf("category should stay unchanged, got %v", *f.Category)
	}
	if f.Date == nil || *f.Date != core.NewDate(2024, 3, 2) {
		t.Errorf("date = %v, want 02/03/2024", f.Date)
	}

	rejected := []string{"a/0", "c/PETS", "d/1/3/2024", "a/5 c/FOOD extra", "a/5 a/6"}
	for _, line := range rejected {
		if _, err := EditExpenseFields(line); !errors.Is(err, core.ErrInvalidFieldValue) {
			t.Errorf("EditExpenseFields(%q) error = %v, want invalid field value", line, err)
		}
	}
}

func TestEditIncomeFieldsRejectsCategory(t *testing.T) {
	_, err := EditIncomeFields("c/FOOD")
	if !errors.Is(err, core.ErrInvalidFieldValue) {
		t.Fatalf("error = %v, want invalid field value", err)
	}
	if err.Error() != "Unknown field: c/FOOD. Use a/ or d/." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestList(t *testing.T) {
	req, err := ListExpenses("m/03/2024 c/transport")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Category == nil || *req.Category != core.Transport || req.Month == nil || *req.Month != core.NewYearMonth(2024, 3) {
		t.Fatalf("unexpected request %+v", req)
	}

	req, err = ListExpenses("")
	if err != nil || req.Category != nil || req.Month != nil {
		t.Fatalf("no filters expected, got %+v, %v", req, err)
	}

	if _, err := ListExpenses("food"); err == nil || err.Error() != "Invalid format. Use 'list expenses [c/CATEGORY] [m/MM/yyyy]'." {
		t.Errorf("stray token error = %v", err)
	}
	if _, err := ListIncomes("c/FOOD"); !errors.Is(err, core.ErrInvalidFieldValue) {
		t.Errorf("category on incomes error = %v", err)
	}
	if _, err := ListBudgets("m/3/2024"); !errors.Is(err, core.ErrInvalidFieldValue) {
		t.Errorf("bad month error = %v", err)
	}
}

func TestSearchKeepsEmptyKeyword(t *testing.T) {
	req, err := SearchExpenses("   ")
	if err != nil || req.Keyword != "" {
		t.Fatalf("got %+v, %v", req, err)
	}
	req, _ = SearchExpenses("  team dinner ")
	if req.Keyword != "team dinner" {
		t.Errorf("keyword = %q", req.Keyword)
	}
}

func TestDisplayAndGraph(t *testing.T) {
	if _, err := DisplayExpenses("c/FOOD"); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("display without month error = %v", err)
	}
	d, err := DisplayExpenses("m/04/2024 c/food")
	if err != nil || d.Month != core.NewYearMonth(2024, 4) || *d.Category != core.Food {
		t.Errorf("unexpected display request %+v, %v", d, err)
	}

	years := []struct {
		args string
		ok   bool
	}{
		{"2024", true},
		{"24", false},
		{"20245", false},
		{"year", false},
		{"2024 2025", false},
	}
	for _, y := range years {
		g, err := GraphExpenses(y.args)
		if (err == nil) != y.ok {
			t.Errorf("GraphExpenses(%q) error = %v", y.args, err)
		}
		if y.ok && g.Year != 2024 {
			t.Errorf("year = %d", g.Year)
		}
	}
	if _, err := GraphIncomes(""); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("graph without year error = %v", err)
	}
}
