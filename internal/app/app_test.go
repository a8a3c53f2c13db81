package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/storage"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

type recordingPublisher struct {
	commands []string
}

func (p *recordingPublisher) PublishChange(_ context.Context, msg *amqp.ChangeMessage) error {
	p.commands = append(p.commands, msg.Command)
	return nil
}

type brokenStore struct{}

func (brokenStore) Load(context.Context) (core.Snapshot, error) {
	return core.Snapshot{}, errors.New("permission denied")
}
func (brokenStore) Save(context.Context, core.Snapshot) error { return errors.New("permission denied") }
func (brokenStore) Close() error                             { return nil }

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError, Component: log.ComponentApp, Output: &bytes.Buffer{}, NoColor: true})
}

func runScript(t *testing.T, store storage.Snapshotter, pub services.Publisher, script ...string) (string, *App) {
	t.Helper()
	var out bytes.Buffer
	tracker := services.NewTracker(store, pub, time.Second)
	a := Open(context.Background(), Config{
		In:         strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out:        &out,
		Tracker:    tracker,
		Logger:     quietLogger(),
		Currency:   "USD",
		GraphWidth: 20,
		Now:        fixedNow,
	})
	a.Run(context.Background())
	return out.String(), a
}

func TestRun_BudgetScenario(t *testing.T) {
	store, err := storage.NewMemoryStore(core.Snapshot{})
	if err != nil {
		t.Fatal(err)
	}
	pub := &recordingPublisher{}

	out, a := runScript(t, store, pub,
		"add expense a/50 c/food d/01/03/2024 lunch",
		"add budget a/100 m/03/2024 c/food",
		"add expense a/30 c/food d/05/03/2024 dinner",
		"list expenses",
		"exit",
		"add expense a/1 never reached",
	)

	for _, want := range []string{
		"Welcome to BudgetBuddy!",
		"Remaining budget for 03/2024 (FOOD): $20.00",
		"1. ",
		"2. ",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := len(a.Snapshot().Expenses); got != 2 {
		t.Errorf("expenses = %d, want 2", got)
	}

	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Expenses) != 2 || len(saved.Budgets) != 1 {
		t.Errorf("saved snapshot = %+v", saved)
	}
	// list does not change the stored bytes
	if store.Saves() != 3 {
		t.Errorf("store saves = %d, want 3", store.Saves())
	}
	want := []string{"add_expense", "add_budget", "add_expense"}
	if strings.Join(pub.commands, ",") != strings.Join(want, ",") {
		t.Errorf("published %v, want %v", pub.commands, want)
	}
}

func TestRun_ErrorsDoNotStopLoop(t *testing.T) {
	store, _ := storage.NewMemoryStore(core.Snapshot{})
	pub := &recordingPublisher{}

	out, a := runScript(t, store, pub,
		"spend money",
		"add expense a/-5 c/food coffee",
		"delete expense 3",
		"add income a/1000 d/01/03/2024 salary",
	)

	for _, want := range []string{
		"Unrecognized command: spend money",
		"Amount must be a positive value.",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := len(a.Snapshot().Incomes); got != 1 {
		t.Errorf("incomes = %d, want 1", got)
	}
	if len(pub.commands) != 1 || pub.commands[0] != "add_income" {
		t.Errorf("only the successful command should be published, got %v", pub.commands)
	}
}

func TestRun_EditDialog(t *testing.T) {
	seed := core.Snapshot{Expenses: []*core.Expense{{
		ID: "e1", Amount: core.MustMoney("12"), Category: core.Food,
		Date: core.NewDate(2024, 3, 1), Description: "lunch",
	}}}
	store, _ := storage.NewMemoryStore(seed)

	out, a := runScript(t, store, nil,
		"edit expenses 1",
		"a/15 c/transport",
		"exit",
	)

	if !strings.Contains(out, "Edited Expense:") {
		t.Errorf("output missing edit confirmation:\n%s", out)
	}
	e := a.Snapshot().Expenses[0]
	if !e.Amount.Equal(core.MustMoney("15")) || e.Category != core.Transport || e.ID != "e1" {
		t.Errorf("edited expense = %+v", e)
	}
}

func TestRun_EditDialogEndOfInput(t *testing.T) {
	seed := core.Snapshot{Expenses: []*core.Expense{{
		ID: "e1", Amount: core.MustMoney("12"), Category: core.Food,
		Date: core.NewDate(2024, 3, 1), Description: "lunch",
	}}}
	store, _ := storage.NewMemoryStore(seed)

	out, _ := runScript(t, store, nil, "edit expenses 1")
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("loop should end cleanly:\n%s", out)
	}
}

func TestRun_DegradedStore(t *testing.T) {
	out, a := runScript(t, brokenStore{}, nil,
		"add expense a/5 c/food coffee",
		"list expenses",
	)

	if !strings.Contains(out, "Error loading saved data") {
		t.Errorf("load failure should be reported:\n%s", out)
	}
	if !strings.Contains(out, "Error updating file") {
		t.Errorf("save failure should be reported:\n%s", out)
	}
	if got := len(a.Snapshot().Expenses); got != 1 {
		t.Errorf("in-memory state should survive save failure, got %d expenses", got)
	}
}

func TestRun_PersistsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BudgetBuddy.txt")
	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	runScript(t, store, nil, "add income a/2500 d/01/03/2024 march salary", "exit")
	out, a := runScript(t, store, nil, "list incomes", "exit")

	if !strings.Contains(out, "march salary") {
		t.Errorf("second run should see the saved income:\n%s", out)
	}
	if len(a.Snapshot().Incomes) != 1 {
		t.Errorf("incomes = %d, want 1", len(a.Snapshot().Incomes))
	}
}

func TestFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "BudgetBuddy.txt")
	raw := "\n" +
		`{"record":"budget","id":"b1","amount":"100","month":"2024-03"}` + "\n\n" +
		`{"record":"expense","id":"e1","amount":"50","category":"FOOD","date":"2024-03-01","description":"lunch"}` + "\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	tracker := services.NewTracker(store, nil, time.Second)

	if err := Format(ctx, tracker); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"record":"expense","id":"e1","amount":"50","category":"FOOD","date":"2024-03-01","description":"lunch"}` + "\n" +
		`{"record":"budget","id":"b1","amount":"100","month":"2024-03"}` + "\n"
	if string(got) != want {
		t.Errorf("Format() wrote\n%s\nwant\n%s", got, want)
	}

	if err := Format(ctx, services.NewTracker(brokenStore{}, nil, time.Second)); !errors.Is(err, core.ErrPersistenceFailure) {
		t.Errorf("Format() on unreadable store error = %v", err)
	}
}

func TestRun_OversizedLineDoesNotEndLoop(t *testing.T) {
	store, _ := storage.NewMemoryStore(core.Snapshot{})

	out, _ := runScript(t, store, nil,
		"add expense a/5 c/food coffee",
		"search expense "+strings.Repeat("x", 70*1024),
		"list expenses",
		"exit",
	)

	if !strings.Contains(out, "No expense entry with given parameters found") {
		t.Errorf("oversized search should run and find nothing:\n%.300s", out)
	}
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "coffee") {
		t.Errorf("list after the oversized line should still run")
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("loop should reach exit")
	}
}

// failingReader returns an error on every read.
type failingReader struct{ reads int }

func (r *failingReader) Read([]byte) (int, error) {
	r.reads++
	return 0, errors.New("input/output error")
}

func TestRun_ReadErrorsAreShown(t *testing.T) {
	store, _ := storage.NewMemoryStore(core.Snapshot{})
	in := &failingReader{}
	var out bytes.Buffer
	a := Open(context.Background(), Config{
		In:      in,
		Out:     &out,
		Tracker: services.NewTracker(store, nil, time.Second),
		Logger:  quietLogger(),
		Now:     fixedNow,
	})
	a.Run(context.Background())

	if got := strings.Count(out.String(), "read input: input/output error"); got != maxReadFailures {
		t.Errorf("read error shown %d times, want %d:\n%s", got, maxReadFailures, out.String())
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("loop should end with goodbye:\n%s", out.String())
	}
}
