// Package sqlite implements the journal store on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vibematrix/internal/domain"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
	now func() time.Time
}

var _ domain.MoodRepository = (*DB)(nil)
var _ domain.ScheduleRepository = (*DB)(nil)

// Open opens (creating if needed) the database file and runs migrations.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; SQLite serializes anyway.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d := &DB{sql: s, now: time.Now}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// WithClock replaces the timestamp source used by Append.
func (d *DB) WithClock(now func() time.Time) *DB {
	d.now = now
	return d
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS mood_entries (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			emoji TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			tag TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mood_entries_created_at ON mood_entries(created_at);`,
		`CREATE TABLE IF NOT EXISTS schedules (
			slot INTEGER PRIMARY KEY CHECK(slot = 1),
			kind TEXT NOT NULL CHECK(kind IN ('hourly','daily','weekly')),
			time_of_day TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// LoadAll returns every entry in insertion order.
func (d *DB) LoadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, name, emoji, message, tag, created_at FROM mood_entries ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.MoodEntry{}
	for rows.Next() {
		var (
			e  domain.MoodEntry
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Emoji, &e.Message, &e.Tag, &ts); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("entry %s: bad created_at %q: %w", e.ID, ts, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Append inserts a new entry stamped with the current time.
func (d *DB) Append(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
	e := domain.MoodEntry{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Emoji:   in.Emoji,
		Message: in.Message,
		Date:    d.now(),
		Tag:     in.Tag,
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO mood_entries(id, name, emoji, message, tag, created_at) VALUES(?, ?, ?, ?, ?, ?);`,
		e.ID, e.Name, e.Emoji, e.Message, e.Tag, e.Date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.MoodEntry{}, err
	}
	return e, nil
}

// LoadSchedule returns the saved schedule, or nil.
func (d *DB) LoadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	var (
		cfg  domain.ScheduleConfig
		kind string
		ts   string
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT kind, time_of_day, created_at FROM schedules WHERE slot = 1;`,
	).Scan(&kind, &cfg.TimeOfDay, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cfg.Kind = domain.ScheduleKind(kind)
	if cfg.CreatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return nil, fmt.Errorf("schedule: bad created_at %q: %w", ts, err)
	}
	return &cfg, nil
}

// SaveSchedule upserts the single schedule row.
func (d *DB) SaveSchedule(ctx context.Context, cfg domain.ScheduleConfig) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO schedules(slot, kind, time_of_day, created_at) VALUES(1, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET kind = excluded.kind, time_of_day = excluded.time_of_day, created_at = excluded.created_at;`,
		string(cfg.Kind), cfg.TimeOfDay, cfg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ClearSchedule deletes the schedule row.
func (d *DB) ClearSchedule(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM schedules WHERE slot = 1;`)
	return err
}
