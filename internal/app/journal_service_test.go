package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vibematrix/internal/app"
	"vibematrix/internal/domain"
)

func newJournal(repo domain.MoodRepository, clock app.Clock, n app.Notifier) *app.JournalService {
	return app.NewJournalService(repo, clock, n, zap.NewNop()).WithRandom(func(int) int { return 0 })
}

func TestLog_Validation(t *testing.T) {
	called := false
	repo := &mockMoodRepo{
		appendFn: func(_ context.Context, _ domain.MoodInput) (domain.MoodEntry, error) {
			called = true
			return domain.MoodEntry{}, nil
		},
	}
	svc := newJournal(repo, app.SystemClock{}, nil)

	tests := []struct {
		name string
		in   domain.MoodInput
	}{
		{"missing name", domain.MoodInput{Emoji: "😊"}},
		{"missing emoji", domain.MoodInput{Name: "😊 Happy"}},
		{"unknown tag", domain.MoodInput{Name: "😊 Happy", Emoji: "😊", Tag: "manual"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Log(context.Background(), tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, app.ErrInvalidInput)
		})
	}
	assert.False(t, called, "invalid input must not reach the store")
}

func TestLog_Success(t *testing.T) {
	var got domain.MoodInput
	repo := &mockMoodRepo{
		appendFn: func(_ context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
			got = in
			return domain.MoodEntry{Name: in.Name, Emoji: in.Emoji, Date: time.Now()}, nil
		},
	}
	svc := newJournal(repo, app.SystemClock{}, nil)

	happy, _ := domain.MoodByName("😊 Happy")
	e, err := svc.Log(context.Background(), happy.Input(""))
	require.NoError(t, err)
	assert.Equal(t, "😊", e.Emoji)
	assert.Equal(t, happy.Message, got.Message)
}

func TestLog_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	repo := &mockMoodRepo{
		appendFn: func(_ context.Context, _ domain.MoodInput) (domain.MoodEntry, error) {
			return domain.MoodEntry{}, boom
		},
	}
	svc := newJournal(repo, app.SystemClock{}, nil)

	_, err := svc.Log(context.Background(), domain.Moods[0].Input(""))
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_PropagatesLoadError(t *testing.T) {
	repo := &mockMoodRepo{
		loadFn: func(_ context.Context) ([]domain.MoodEntry, error) { return nil, errors.New("db down") },
	}
	svc := newJournal(repo, app.SystemClock{}, nil)

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}

func TestViews(t *testing.T) {
	entries := []domain.MoodEntry{entry("😎", day(2)), entry("😎", day(1)), entry("😡", day(0))}
	repo := &mockMoodRepo{
		loadFn: func(_ context.Context) ([]domain.MoodEntry, error) { return entries, nil },
	}
	svc := newJournal(repo, app.SystemClock{}, nil)
	ctx := context.Background()

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "😎", st.MostUsed.Key)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Days)

	hist, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "😡", hist[0].Emoji)

	trend, err := svc.Trend(ctx)
	require.NoError(t, err)
	assert.Len(t, trend, 3)
}

func TestMoodOfTheDay(t *testing.T) {
	var got domain.MoodInput
	repo := &mockMoodRepo{
		appendFn: func(_ context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
			got = in
			return domain.MoodEntry{}, nil
		},
	}
	n := &mockNotifier{err: errors.New("no notifier daemon")}
	svc := newJournal(repo, app.SystemClock{}, n)

	mood, quote, err := svc.MoodOfTheDay(context.Background())
	require.NoError(t, err, "notification failures are not fatal")
	assert.Equal(t, domain.Moods[0], mood)
	assert.Equal(t, domain.Quotes[0], quote)
	assert.Equal(t, domain.TagAuto, got.Tag)
	assert.Equal(t, 1, n.calls)
}

func TestShouldOfferMoodOfTheDay(t *testing.T) {
	nine := time.Date(2026, time.March, 20, 9, 15, 0, 0, time.Local)
	ten := nine.Add(time.Hour)

	var stored []domain.MoodEntry
	repo := &mockMoodRepo{
		loadFn: func(_ context.Context) ([]domain.MoodEntry, error) { return stored, nil },
	}

	assert.True(t, newJournal(repo, newFakeClock(nine), nil).ShouldOfferMoodOfTheDay(context.Background()))
	assert.False(t, newJournal(repo, newFakeClock(ten), nil).ShouldOfferMoodOfTheDay(context.Background()))

	stored = []domain.MoodEntry{{Name: "😊 Happy", Emoji: "😊", Tag: domain.TagAuto, Date: nine.Add(-time.Minute)}}
	assert.False(t, newJournal(repo, newFakeClock(nine), nil).ShouldOfferMoodOfTheDay(context.Background()))

	stored[0].Date = nine.AddDate(0, 0, -1)
	assert.True(t, newJournal(repo, newFakeClock(nine), nil).ShouldOfferMoodOfTheDay(context.Background()))
}

func TestPredict(t *testing.T) {
	var got domain.MoodInput
	repo := &mockMoodRepo{
		appendFn: func(_ context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
			got = in
			return domain.MoodEntry{}, nil
		},
	}
	svc := newJournal(repo, app.SystemClock{}, nil)

	mood, err := svc.Predict(context.Background(), "Fix flaky login test")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodFocused, mood)
	assert.Equal(t, domain.TagPredicted, got.Tag)
	assert.Equal(t, "🤖", got.Emoji)
}
