package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/storage"
)

// Publisher announces a committed state change.
type Publisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
}

// DefaultTimeout bounds one load or save when none is configured.
const DefaultTimeout = 5 * time.Second

// Tracker orchestrates snapshot persistence and change notifications.
// Persistence is authoritative and publishing is best effort. Closing the
// store and publisher is left to whoever created them.
type Tracker struct {
	store     storage.Snapshotter
	publisher Publisher
	timeout   time.Duration
}

// NewTracker wires a snapshot store and an optional publisher. A nil
// publisher disables change notifications.
func NewTracker(store storage.Snapshotter, publisher Publisher, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Tracker{
		store:     store,
		publisher: publisher,
		timeout:   timeout,
	}
}

// Load reads the persisted snapshot. When the store cannot be read the
// tracker degrades: it returns an empty snapshot together with a
// PersistenceFailure describing what went wrong, and the caller keeps going.
func (t *Tracker) Load(ctx context.Context) (core.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	snap, err := t.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load snapshot, starting with empty registries",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err)
		return core.Snapshot{}, core.WithMessage(core.ErrPersistenceFailure,
			fmt.Sprintf("Error loading saved data, starting empty: %v", err))
	}

	slog.DebugContext(ctx, "Snapshot loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldExpenses, len(snap.Expenses),
		log.FieldIncomes, len(snap.Incomes),
		log.FieldBudgets, len(snap.Budgets),
		log.FieldDuration, time.Since(start).Milliseconds())
	return snap, nil
}

// Save replaces the stored snapshot with s.
func (t *Tracker) Save(ctx context.Context, s core.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	if err := t.store.Save(ctx, s); err != nil {
		slog.WarnContext(ctx, "Failed to save snapshot",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
		// The console shows only the fixed message; the cause goes to the log.
		return &core.CommandError{
			Kind:    core.KindPersistenceFailure,
			Message: core.ErrPersistenceFailure.Message,
			Err:     fmt.Errorf("save snapshot: %w", err),
		}
	}
	slog.DebugContext(ctx, "Snapshot saved",
		log.FieldOperation, log.OpSave,
		log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// Publish announces that command changed the state. Failures are logged and
// never returned: the change is already saved locally.
func (t *Tracker) Publish(ctx context.Context, command string, s core.Snapshot) {
	if t.publisher == nil {
		slog.DebugContext(ctx, "Publisher not configured, skipping change message", log.FieldCommand, command)
		return
	}

	msg := amqp.NewChangeMessage(command, len(s.Expenses), len(s.Incomes), len(s.Budgets))
	if err := t.publisher.PublishChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			log.FieldComponent, log.ComponentAMQP,
			log.FieldOperation, log.OpPublish,
			log.FieldCommand, command,
			log.FieldMessageID, msg.ID,
			log.FieldError, err)
		return
	}
	slog.DebugContext(ctx, "Change message published",
		log.FieldComponent, log.ComponentAMQP,
		log.FieldOperation, log.OpPublish,
		log.FieldCommand, command,
		log.FieldMessageID, msg.ID)
}
