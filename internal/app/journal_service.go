// Package app holds the application services and the journal aggregations.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"vibematrix/internal/domain"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Notifier delivers desktop notifications.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// moodOfTheDayHour is the local hour at which logging offers a mood of the day.
const moodOfTheDayHour = 9

// JournalService encapsulates mood logging and the derived views.
type JournalService struct {
	repo     domain.MoodRepository
	clock    Clock
	notifier Notifier
	logger   *zap.Logger
	intn     func(n int) int
}

// NewJournalService creates a JournalService backed by the given repository.
// notifier may be nil.
func NewJournalService(repo domain.MoodRepository, clock Clock, notifier Notifier, logger *zap.Logger) *JournalService {
	return &JournalService{
		repo:     repo,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		intn:     rand.IntN,
	}
}

// WithRandom replaces the random index source, for deterministic tests.
func (s *JournalService) WithRandom(intn func(n int) int) *JournalService {
	s.intn = intn
	return s
}

// Log validates and appends a mood entry.
func (s *JournalService) Log(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
	if err := validateStruct(in); err != nil {
		return domain.MoodEntry{}, err
	}
	e, err := s.repo.Append(ctx, in)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("append mood: %w", err)
	}
	s.logger.Debug("mood logged", zap.String("emoji", e.Emoji), zap.String("tag", e.Tag))
	return e, nil
}

// Entries returns the full log in storage order.
func (s *JournalService) Entries(ctx context.Context) ([]domain.MoodEntry, error) {
	entries, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load moods: %w", err)
	}
	return entries, nil
}

// Stats returns per-emoji counts and the most used emoji.
func (s *JournalService) Stats(ctx context.Context) (Stats, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(entries), nil
}

// Dashboard returns the dashboard summary.
func (s *JournalService) Dashboard(ctx context.Context) (Summary, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return Summary{}, err
	}
	return DashboardSummary(entries), nil
}

// Streak returns the current streak.
func (s *JournalService) Streak(ctx context.Context) (StreakInfo, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return StreakInfo{}, err
	}
	return CurrentStreak(entries), nil
}

// History returns the n most recent entries.
func (s *JournalService) History(ctx context.Context, n int) ([]domain.MoodEntry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return RecentHistory(entries, n), nil
}

// Trend returns the weekly energy trend.
func (s *JournalService) Trend(ctx context.Context) ([]DayEnergy, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyEnergyTrend(entries), nil
}

// RandomQuote picks an encouragement quote.
func (s *JournalService) RandomQuote() string {
	return domain.Quotes[s.intn(len(domain.Quotes))]
}

// MoodOfTheDay picks a random catalog mood, logs it tagged auto and sends a
// desktop notification. A failed notification is only logged.
func (s *JournalService) MoodOfTheDay(ctx context.Context) (domain.Mood, string, error) {
	mood := domain.Moods[s.intn(len(domain.Moods))]
	quote := s.RandomQuote()

	if s.notifier != nil {
		msg := fmt.Sprintf("%s %s: %s\n%s", mood.Emoji, mood.Word(), mood.Message, quote)
		if err := s.notifier.Notify(ctx, "🌞 VibeMatrix: Mood of the Day", msg); err != nil {
			s.logger.Warn("notification failed", zap.Error(err))
		}
	}

	if _, err := s.Log(ctx, mood.Input(domain.TagAuto)); err != nil {
		return mood, quote, err
	}
	return mood, quote, nil
}

// ShouldOfferMoodOfTheDay reports whether it is the mood-of-the-day hour and
// no auto entry has been logged today.
func (s *JournalService) ShouldOfferMoodOfTheDay(ctx context.Context) bool {
	now := s.clock.Now().In(time.Local)
	if now.Hour() != moodOfTheDayHour {
		return false
	}
	entries, err := s.Entries(ctx)
	if err != nil {
		s.logger.Warn("mood of the day check failed", zap.Error(err))
		return false
	}
	today := now.Format("2006-01-02")
	for _, e := range entries {
		if e.Tag == domain.TagAuto && e.Day() == today {
			return false
		}
	}
	return true
}

// Predict classifies text into a mood and logs it tagged predicted.
func (s *JournalService) Predict(ctx context.Context, text string) (domain.Mood, error) {
	mood := domain.PredictMood(text)
	if _, err := s.Log(ctx, mood.Input(domain.TagPredicted)); err != nil {
		return mood, err
	}
	return mood, nil
}
