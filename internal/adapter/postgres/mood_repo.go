package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"vibematrix/internal/domain"
)

var _ domain.MoodRepository = (*DB)(nil)
var _ domain.ScheduleRepository = (*DB)(nil)

// LoadAll returns every entry in insertion order.
func (d *DB) LoadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, emoji, message, tag, created_at FROM mood_entries ORDER BY seq;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.MoodEntry{}
	for rows.Next() {
		var e domain.MoodEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Emoji, &e.Message, &e.Tag, &e.Date); err != nil {
			return nil, err
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
		Date:    d.now().UTC(),
		Tag:     in.Tag,
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO mood_entries(id, name, emoji, message, tag, created_at) VALUES($1, $2, $3, $4, $5, $6);",
		e.ID, e.Name, e.Emoji, e.Message, e.Tag, e.Date,
	)
	if err != nil {
		return domain.MoodEntry{}, err
	}
	return e, nil
}

// LoadSchedule returns the saved schedule, or nil.
func (d *DB) LoadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	var cfg domain.ScheduleConfig
	err := d.sql.QueryRowContext(ctx,
		"SELECT kind, time_of_day, created_at FROM schedules WHERE slot = 1;",
	).Scan(&cfg.Kind, &cfg.TimeOfDay, &cfg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveSchedule upserts the single schedule row.
func (d *DB) SaveSchedule(ctx context.Context, cfg domain.ScheduleConfig) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO schedules(slot, kind, time_of_day, created_at) VALUES(1, $1, $2, $3)
		 ON CONFLICT (slot) DO UPDATE SET kind = EXCLUDED.kind, time_of_day = EXCLUDED.time_of_day, created_at = EXCLUDED.created_at;`,
		string(cfg.Kind), cfg.TimeOfDay, cfg.CreatedAt.UTC(),
	)
	return err
}

// ClearSchedule deletes the schedule row.
func (d *DB) ClearSchedule(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM schedules WHERE slot = 1;")
	return err
}
