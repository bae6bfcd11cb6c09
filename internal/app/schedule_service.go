package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"vibematrix/internal/domain"
)

// ErrBadSchedule is returned for unknown kinds or unparseable times.
var ErrBadSchedule = errors.New("schedule must be hourly, daily or weekly followed by a time like 9am or 21:30")

// ScheduleService manages the saved reminder schedule.
type ScheduleService struct {
	repo  domain.ScheduleRepository
	clock Clock
}

// NewScheduleService creates a ScheduleService backed by the given repository.
func NewScheduleService(repo domain.ScheduleRepository, clock Clock) *ScheduleService {
	return &ScheduleService{repo: repo, clock: clock}
}

// Save validates and stores a schedule, replacing any existing one.
func (s *ScheduleService) Save(ctx context.Context, kind, timeOfDay string) (domain.ScheduleConfig, error) {
	cfg := domain.ScheduleConfig{
		Kind:      domain.ScheduleKind(strings.ToLower(kind)),
		TimeOfDay: strings.ToLower(strings.TrimSpace(timeOfDay)),
		CreatedAt: s.clock.Now(),
	}
	if err := validateStruct(cfg); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("%w (%v)", ErrBadSchedule, err)
	}
	if _, _, err := ParseTimeOfDay(cfg.TimeOfDay); err != nil {
		return domain.ScheduleConfig{}, err
	}
	if err := s.repo.SaveSchedule(ctx, cfg); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("save schedule: %w", err)
	}
	return cfg, nil
}

// Clear removes the saved schedule.
func (s *ScheduleService) Clear(ctx context.Context) error {
	if err := s.repo.ClearSchedule(ctx); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	return nil
}

// Current returns the saved schedule, or nil.
func (s *ScheduleService) Current(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.repo.LoadSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return cfg, nil
}

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseTimeOfDay accepts 9am, 9:30pm, 21:00 or 21 and returns a 24h hour
// and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	m := timeOfDayPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, 0, ErrBadSchedule
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, ErrBadSchedule
	}
	switch m[3] {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, ErrBadSchedule
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, ErrBadSchedule
		}
	}
	return hour, minute, nil
}

// cronSpec renders the schedule as a five-field cron expression. Weekly
// schedules fire on the weekday the schedule was created.
func cronSpec(cfg domain.ScheduleConfig) (string, error) {
	hour, minute, err := ParseTimeOfDay(cfg.TimeOfDay)
	if err != nil {
		return "", err
	}
	switch cfg.Kind {
	case domain.ScheduleHourly:
		return fmt.Sprintf("%d * * * *", minute), nil
	case domain.ScheduleDaily:
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case domain.ScheduleWeekly:
		return fmt.Sprintf("%d %d * * %d", minute, hour, int(cfg.CreatedAt.In(time.Local).Weekday())), nil
	default:
		return "", ErrBadSchedule
	}
}

// Next returns the first fire time of cfg strictly after after.
func Next(cfg domain.ScheduleConfig, after time.Time) (time.Time, error) {
	spec, err := cronSpec(cfg)
	if err != nil {
		return time.Time{}, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron %q: %w", spec, err)
	}
	return sched.Next(after), nil
}
