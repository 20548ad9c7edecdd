// Package testkit holds helpers shared by package tests: a migrated in-memory
// database and a Records wrapper that can be told to fail.
package testkit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/db"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	sqlDB, err := testDB.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return testDB
}

// NewRecords returns a backend.Records over a fresh database along with the database itself.
func NewRecords(t testing.TB) (*Records, *gorm.DB) {
	testDB := NewDB(t)
	return &Records{Next: db.NewClient(testDB, 5*time.Second)}, testDB
}

// Records forwards to Next unless an error is configured for the operation.
type Records struct {
	Next backend.Records

	mu        sync.Mutex
	CreateErr error
	QueryErr  error
	UpdateErr error
	Creates   int
	Updates   int

	// BeforeUpdate runs ahead of every UpdateRecords call, after the caller's last read.
	BeforeUpdate func()
}

var _ backend.Records = (*Records)(nil)

func (r *Records) CreateRecord(ctx context.Context, table string, record any) error {
	r.mu.Lock()
	r.Creates++
	err := r.CreateErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Next.CreateRecord(ctx, table, record)
}

func (r *Records) QueryRecords(ctx context.Context, table string, q backend.Query, dest any) error {
	r.mu.Lock()
	err := r.QueryErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Next.QueryRecords(ctx, table, q, dest)
}

func (r *Records) UpdateRecords(ctx context.Context, table string, filter backend.Filter, fields map[string]any) (int64, error) {
	r.mu.Lock()
	r.Updates++
	err := r.UpdateErr
	hook := r.BeforeUpdate
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return 0, err
	}
	return r.Next.UpdateRecords(ctx, table, filter, fields)
}

func (r *Records) CreateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Creates
}

func (r *Records) UpdateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Updates
}
