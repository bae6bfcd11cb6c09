package app

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrBadInterval is returned for durations not shaped like 30s, 5m or 2h.
var ErrBadInterval = errors.New("interval must look like 30s, 5m or 2h")

var intervalPattern = regexp.MustCompile(`^(\d+)([smh])$`)

// ParseInterval parses "<integer><s|m|h>" into a positive duration.
func ParseInterval(s string) (time.Duration, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrBadInterval
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, ErrBadInterval
	}
	unit := time.Second
	switch m[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	}
	return time.Duration(n) * unit, nil
}

// Clock abstracts time so long-running modes can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// After waits for d on the wall clock.
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Task is one unit of work run by a Runner.
type Task func(ctx context.Context) error

// Runner runs tasks after delays until its context is cancelled.
type Runner struct {
	clock  Clock
	logger *zap.Logger
}

// NewRunner creates a Runner on the given clock.
func NewRunner(clock Clock, logger *zap.Logger) *Runner {
	return &Runner{clock: clock, logger: logger}
}

func (r *Runner) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(d):
		return nil
	}
}

// Once waits d and runs fn a single time.
func (r *Runner) Once(ctx context.Context, d time.Duration, fn Task) error {
	if err := r.wait(ctx, d); err != nil {
		return err
	}
	return fn(ctx)
}

// Every runs fn immediately and then again every d. Task errors are logged
// and do not stop the loop.
func (r *Runner) Every(ctx context.Context, d time.Duration, fn Task) error {
	for {
		if err := fn(ctx); err != nil {
			r.logger.Warn("task failed", zap.Error(err))
		}
		if err := r.wait(ctx, d); err != nil {
			return err
		}
	}
}

// Until waits for each time returned by next and runs fn there.
func (r *Runner) Until(ctx context.Context, next func(after time.Time) (time.Time, error), fn Task) error {
	for {
		now := r.clock.Now()
		at, err := next(now)
		if err != nil {
			return err
		}
		r.logger.Debug("next run", zap.Time("at", at))
		if err := r.wait(ctx, at.Sub(now)); err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			r.logger.Warn("task failed", zap.Error(err))
		}
	}
}
