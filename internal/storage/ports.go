package storage

import (
	"context"

	"budgetbuddy/internal/core"
)

// Snapshotter persists the whole tracker state. Save always receives the
// complete snapshot and replaces whatever was stored before.
type Snapshotter interface {
	Load(ctx context.Context) (core.Snapshot, error)
	Save(ctx context.Context, s core.Snapshot) error
	Close() error
}
