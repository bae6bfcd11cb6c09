package domain

import (
	"context"
	"time"
)

// ScheduleKind is how often a scheduled reminder fires.
type ScheduleKind string

const (
	ScheduleHourly ScheduleKind = "hourly"
	ScheduleDaily  ScheduleKind = "daily"
	ScheduleWeekly ScheduleKind = "weekly"
)

// ScheduleConfig is the single saved reminder schedule. JSON names match the
// on-disk format written by earlier versions of the tool.
type ScheduleConfig struct {
	Kind      ScheduleKind `json:"type" validate:"required,oneof=hourly daily weekly"`
	TimeOfDay string       `json:"time" validate:"required"`
	CreatedAt time.Time    `json:"created"`
}

// ScheduleRepository is the port for schedule persistence. LoadSchedule
// returns nil when no schedule is saved.
type ScheduleRepository interface {
	LoadSchedule(ctx context.Context) (*ScheduleConfig, error)
	SaveSchedule(ctx context.Context, cfg ScheduleConfig) error
	ClearSchedule(ctx context.Context) error
}
