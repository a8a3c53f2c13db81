package backend

import (
	"context"
	"path/filepath"
	"testing"

	"budgetbuddy/internal/config"
	"budgetbuddy/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", AMQPExchange: "e", AMQPQueue: "q"}
	got, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != SQLiteBackend || got.SQLiteDBPath != "x.db" || got.AMQPQueue != "q" {
		t.Errorf("unexpected backend config %+v", got)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("unknown backend should be rejected")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("nil config should be rejected")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"file", Config{Type: FileBackend, DataFile: "data.txt"}, false},
		{"file without path", Config{Type: FileBackend}, true},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"memory", Config{Type: MemoryBackend}, false},
		{"amqp without queue", Config{Type: MemoryBackend, AMQPURL: "amqp://localhost", AMQPExchange: "e"}, true},
		{"unknown", Config{Type: "postgres"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := NewFactory(nil)

	tests := []struct {
		name   string
		config Config
	}{
		{"file", Config{Type: FileBackend, DataFile: filepath.Join(dir, "data", "BudgetBuddy.txt")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "budgetbuddy.db")}},
		{"memory", Config{Type: MemoryBackend}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer res.Cleanup()

			if res.Publisher != nil {
				t.Error("publisher should be disabled without AMQP URL")
			}
			snap := core.Snapshot{Budgets: []*core.Budget{
				{ID: "b1", Amount: core.MustMoney("100"), Month: core.NewYearMonth(2024, 3)},
			}}
			if err := res.Store.Save(ctx, snap); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := res.Store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got.Budgets) != 1 || got.Budgets[0].ID != "b1" {
				t.Errorf("Load() = %+v", got)
			}
		})
	}
}
