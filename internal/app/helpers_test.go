package app_test

import (
	"context"
	"sync"
	"time"

	"vibematrix/internal/domain"
)

// fakeClock fires every After immediately and advances its own time.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

type mockMoodRepo struct {
	loadFn   func(ctx context.Context) ([]domain.MoodEntry, error)
	appendFn func(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error)
}

func (m *mockMoodRepo) LoadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockMoodRepo) Append(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, in)
	}
	return domain.MoodEntry{Name: in.Name, Emoji: in.Emoji, Message: in.Message, Tag: in.Tag, Date: time.Now()}, nil
}

type mockScheduleRepo struct {
	cfg     *domain.ScheduleConfig
	saveErr error
}

func (m *mockScheduleRepo) LoadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	return m.cfg, nil
}

func (m *mockScheduleRepo) SaveSchedule(ctx context.Context, cfg domain.ScheduleConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = &cfg
	return nil
}

func (m *mockScheduleRepo) ClearSchedule(ctx context.Context) error {
	m.cfg = nil
	return nil
}

type mockNotifier struct {
	calls int
	err   error
}

func (m *mockNotifier) Notify(ctx context.Context, title, message string) error {
	m.calls++
	return m.err
}

// day returns noon local time n days before the reference date.
func day(n int) time.Time {
	return time.Date(2026, time.March, 20, 12, 0, 0, 0, time.Local).AddDate(0, 0, -n)
}

func entry(emoji string, at time.Time) domain.MoodEntry {
	return domain.MoodEntry{Name: emoji + " Mood", Emoji: emoji, Date: at}
}
