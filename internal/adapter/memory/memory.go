// Package memory implements an in-memory journal store for development and
// testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vibematrix/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	entries  []domain.MoodEntry
	schedule *domain.ScheduleConfig
	now      func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{now: time.Now}
}

// Ensure interfaces are met.
var _ domain.MoodRepository = (*DB)(nil)
var _ domain.ScheduleRepository = (*DB)(nil)

// WithClock replaces the timestamp source used by Append.
func (db *DB) WithClock(now func() time.Time) *DB {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
	return db
}

// --- MoodRepository ---

// LoadAll returns a copy of all entries in append order.
func (db *DB) LoadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.MoodEntry, len(db.entries))
	copy(result, db.entries)
	return result, nil
}

// Append stamps and stores an entry.
func (db *DB) Append(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e := domain.MoodEntry{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Emoji:   in.Emoji,
		Message: in.Message,
		Date:    db.now(),
		Tag:     in.Tag,
	}
	db.entries = append(db.entries, e)
	return e, nil
}

// --- ScheduleRepository ---

// LoadSchedule returns the saved schedule, or nil.
func (db *DB) LoadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.schedule == nil {
		return nil, nil
	}
	cfg := *db.schedule
	return &cfg, nil
}

// SaveSchedule replaces the saved schedule.
func (db *DB) SaveSchedule(ctx context.Context, cfg domain.ScheduleConfig) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.schedule = &cfg
	return nil
}

// ClearSchedule removes the saved schedule.
func (db *DB) ClearSchedule(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.schedule = nil
	return nil
}
