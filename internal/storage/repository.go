package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot in three SQLite tables. Row order is kept
// in a position column.
type SQLiteStore struct {
	db   *sql.DB
	path string
	// last is the encoding of the most recently loaded or saved snapshot.
	last []byte
	// held is set when a failed load could not be backed up; saves are
	// refused so the unreadable rows are not replaced.
	held error
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("SQLite schema ready", log.FieldPath, dbPath, "version", version)

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the three tables concurrently. When any row cannot be read the
// database is copied to path+CorruptSuffix and the load error is returned.
// The unreadable rows stay in place until a snapshot that differs from the
// empty one is saved.
func (s *SQLiteStore) Load(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Expenses, err = s.loadExpenses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Incomes, err = s.loadIncomes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Budgets, err = s.loadBudgets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Snapshot{}, s.quarantine(ctx, err)
	}

	if data, err := MarshalSnapshot(snap); err == nil {
		s.last = data
	}
	slog.DebugContext(ctx, "Snapshot loaded from SQLite",
		log.FieldOperation, log.OpLoad,
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes),
		"budgets", len(snap.Budgets))
	return snap, nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context) ([]*core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, category, date, description FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []*core.Expense
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.ID, &l.Amount, &l.Category, &l.Date, &l.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e, err := l.expense()
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", l.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadIncomes(ctx context.Context) ([]*core.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, date, description FROM incomes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query incomes: %w", err)
	}
	defer rows.Close()

	var out []*core.Income
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.ID, &l.Amount, &l.Date, &l.Description); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		i, err := l.income()
		if err != nil {
			return nil, fmt.Errorf("income %s: %w", l.ID, err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incomes: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadBudgets(ctx context.Context) ([]*core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, month, category FROM budgets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []*core.Budget
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.ID, &l.Amount, &l.Month, &l.Category); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b, err := l.budget()
		if err != nil {
			return nil, fmt.Errorf("budget %s: %w", l.ID, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

// Save replaces every row in one transaction. A snapshot identical to the
// last one loaded or saved is skipped.
func (s *SQLiteStore) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	if s.last != nil && bytes.Equal(s.last, data) {
		return nil
	}
	if s.held != nil {
		return fmt.Errorf("database left unchanged: %w", s.held)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expenses", "incomes", "budgets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pos, e := range snap.Expenses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, position, amount, category, date, description) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, pos, e.Amount.Exact(), string(e.Category), e.Date.Stored(), e.Description); err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}
	for pos, i := range snap.Incomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO incomes (id, position, amount, date, description) VALUES (?, ?, ?, ?, ?)`,
			i.ID, pos, i.Amount.Exact(), i.Date.Stored(), i.Description); err != nil {
			return fmt.Errorf("insert income %s: %w", i.ID, err)
		}
	}
	for pos, b := range snap.Budgets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (id, position, amount, month, category) VALUES (?, ?, ?, ?, ?)`,
			b.ID, pos, b.Amount.Exact(), b.Month.Stored(), string(b.Category)); err != nil {
			return fmt.Errorf("insert budget %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	s.last = data

	slog.DebugContext(ctx, "Snapshot saved to SQLite",
		log.FieldOperation, log.OpSave,
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes),
		"budgets", len(snap.Budgets))
	return nil
}

// quarantine copies the database aside after a failed load.
func (s *SQLiteStore) quarantine(ctx context.Context, loadErr error) error {
	// Starting empty must not rewrite the tables by itself.
	if empty, err := MarshalSnapshot(core.Snapshot{}); err == nil {
		s.last = empty
	}

	backup := s.path + CorruptSuffix
	if err := s.backup(ctx, backup); err != nil {
		s.held = fmt.Errorf("load failed and backup to %s failed: %w", backup, err)
		slog.ErrorContext(ctx, "SQLite backup failed, refusing to save",
			log.FieldComponent, log.ComponentStorage,
			log.FieldOperation, log.OpLoad, log.FieldPath, s.path, log.FieldError, err)
		return fmt.Errorf("load snapshot: %w (backup failed: %v)", loadErr, err)
	}

	slog.WarnContext(ctx, "Unreadable SQLite database copied aside",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpLoad,
		log.FieldPath, s.path,
		"backup", backup,
		log.FieldError, loadErr)
	return fmt.Errorf("load snapshot: %w", loadErr)
}

// backup writes a consistent copy of the database to dest, replacing any
// earlier copy.
func (s *SQLiteStore) backup(ctx context.Context, dest string) error {
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old backup: %w", err)
	}
	quoted := "'" + strings.ReplaceAll(dest, "'", "''") + "'"
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO "+quoted); err != nil {
		return fmt.Errorf("vacuum into backup: %w", err)
	}
	return nil
}
