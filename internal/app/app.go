// Package app runs the interactive loop: read a line, parse it, execute it,
// persist the result and announce the change.
package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"budgetbuddy/internal/command"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/executor"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/parser"
	"budgetbuddy/internal/registry"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/ui"
)

// Config wires an App.
type Config struct {
	In         io.Reader
	Out        io.Writer
	Tracker    *services.Tracker
	Logger     *log.Logger
	Currency   string
	GraphWidth int
	// Now supplies today's date for commands that omit d/. Defaults to time.Now.
	Now func() time.Time
}

type App struct {
	console  *ui.Console
	parser   *parser.Parser
	executor *executor.Executor
	tracker  *services.Tracker
	logger   *log.Logger

	expenses *registry.Expenses
	incomes  *registry.Incomes
	budgets  *registry.Budgets

	// diagnostic is shown after the welcome banner, e.g. a failed load.
	diagnostic error
}

// New builds the registries from snap and wires them to a fresh parser and
// executor.
func New(cfg Config, snap core.Snapshot) *App {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.DefaultConfig())
	}

	a := &App{
		console:  ui.NewConsole(cfg.In, cfg.Out),
		parser:   parser.New(cfg.Now),
		tracker:  cfg.Tracker,
		logger:   cfg.Logger.WithComponent(log.ComponentApp),
		expenses: registry.NewExpenses(snap.Expenses),
		incomes:  registry.NewIncomes(snap.Incomes),
		budgets:  registry.NewBudgets(snap.Budgets),
	}
	a.executor = executor.New(executor.Config{
		Out:        a.console.Writer(),
		Prompter:   a.console,
		Expenses:   a.expenses,
		Incomes:    a.incomes,
		Budgets:    a.budgets,
		Currency:   cfg.Currency,
		GraphWidth: cfg.GraphWidth,
	})
	return a
}

// Open loads the persisted snapshot through cfg.Tracker and builds the App.
// A load failure does not stop the tracker: the App starts empty and shows
// the failure once the loop starts.
func Open(ctx context.Context, cfg Config) *App {
	snap, err := cfg.Tracker.Load(ctx)
	a := New(cfg, snap)
	a.diagnostic = err
	return a
}

// Snapshot returns the current state of all registries.
func (a *App) Snapshot() core.Snapshot {
	return core.Snapshot{
		Expenses: a.expenses.All(),
		Incomes:  a.incomes.All(),
		Budgets:  a.budgets.All(),
	}
}

// maxReadFailures ends the loop when input keeps failing in a row, e.g. a
// closed terminal.
const maxReadFailures = 5

// Run reads commands until exit, end of input or ctx is cancelled. Command
// and input errors are shown to the user and never end the loop early.
func (a *App) Run(ctx context.Context) {
	a.logger.InfoContext(ctx, "Starting command loop", log.FieldOperation, log.OpStartup)
	a.console.Welcome()
	if a.diagnostic != nil {
		a.console.Show(a.diagnostic.Error())
	}

	failures := 0
	for {
		line, err := a.console.ReadLine(ctx)
		if err != nil {
			// Cancellation may surface as a read error on a closed input.
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			failures++
			a.logger.WithComponent(log.ComponentUI).WarnContext(ctx, "Failed to read input",
				log.FieldError, err, "consecutive", failures)
			a.console.Show(err.Error())
			if failures >= maxReadFailures {
				break
			}
			continue
		}
		failures = 0
		if strings.TrimSpace(line) == "" {
			continue
		}
		if a.step(ctx, line) {
			break
		}
	}

	a.console.Goodbye()
	a.logger.InfoContext(ctx, "Command loop finished", log.FieldOperation, log.OpShutdown)
}

// step handles one input line. It reports whether the loop should stop.
func (a *App) step(ctx context.Context, line string) bool {
	cmd, err := a.parser.Parse(line)
	if err != nil {
		a.logger.WithComponent(log.ComponentCommand).DebugContext(ctx, "Rejected input",
			log.FieldOperation, log.OpParse, log.FieldError, err)
		a.console.Show(err.Error())
		return false
	}
	if command.IsExit(cmd) {
		return true
	}

	execErr := a.executor.Execute(ctx, cmd)
	if execErr != nil {
		var ce *core.CommandError
		// The edit dialog ran out of input.
		if !errors.As(execErr, &ce) && (errors.Is(execErr, io.EOF) || ctx.Err() != nil) {
			return true
		}
		a.console.Show(execErr.Error())
	}

	snap := a.Snapshot()
	fields := log.NewFields().
		WithOperation(log.OpExecute).
		WithCommand(cmd.Kind()).
		WithCounts(len(snap.Expenses), len(snap.Incomes), len(snap.Budgets)).
		WithError(execErr)
	a.logger.DebugContext(ctx, "Command executed", fields.ToSlice()...)

	if err := a.tracker.Save(ctx, snap); err != nil {
		a.console.Show(err.Error())
		return false
	}
	if execErr == nil && command.Mutates(cmd) {
		a.tracker.Publish(ctx, cmd.Kind(), snap)
	}
	return false
}

// Format loads the stored snapshot and writes it back in canonical form. A
// snapshot that cannot be loaded is left alone.
func Format(ctx context.Context, tracker *services.Tracker) error {
	snap, err := tracker.Load(ctx)
	if err != nil {
		return err
	}
	return tracker.Save(ctx, snap)
}
