package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"vibematrix/internal/adapter/memory"
	"vibematrix/internal/app"
	"vibematrix/internal/config"
	"vibematrix/internal/domain"
)

// fakeClock fires every After immediately and advances its own time.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
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

// scriptedPrompter answers SelectMood from moods in order, then reports
// ErrCancelled.
type scriptedPrompter struct {
	moods   []domain.Mood
	text    string
	textErr error
	asked   []string
}

func (p *scriptedPrompter) SelectMood(context.Context) (domain.Mood, error) {
	if len(p.moods) == 0 {
		return domain.Mood{}, ErrCancelled
	}
	m := p.moods[0]
	p.moods = p.moods[1:]
	return m, nil
}

func (p *scriptedPrompter) AskText(_ context.Context, question string) (string, error) {
	p.asked = append(p.asked, question)
	return p.text, p.textErr
}

type fakeGit struct {
	msg string
	err error
}

func (g fakeGit) LastCommitMessage(context.Context) (string, error) {
	return g.msg, g.err
}

type harness struct {
	repo     *memory.DB
	clock    *fakeClock
	prompter *scriptedPrompter
	git      fakeGit
	cfg      config.Config
}

// noon keeps logging away from the mood-of-the-day hour.
var noon = time.Date(2026, time.March, 20, 12, 0, 0, 0, time.Local)

func newHarness(t *testing.T, moods ...domain.Mood) *harness {
	t.Helper()
	clock := &fakeClock{now: noon}
	return &harness{
		repo:     memory.New().WithClock(clock.Now),
		clock:    clock,
		prompter: &scriptedPrompter{moods: moods},
		git:      fakeGit{msg: "add streak badge"},
		cfg:      config.Default(t.TempDir()),
	}
}

func (h *harness) factory(_ context.Context, opts Options) (*Deps, error) {
	cfg := h.cfg
	cfg.Fast = cfg.Fast || opts.Fast
	cfg.Silent = cfg.Silent || opts.Silent
	return &Deps{
		Config:    &cfg,
		Journal:   app.NewJournalService(h.repo, h.clock, nil, zap.NewNop()),
		Schedules: app.NewScheduleService(h.repo, h.clock),
		Runner:    app.NewRunner(h.clock, zap.NewNop()),
		Clock:     h.clock,
		Prompter:  h.prompter,
		Git:       h.git,
		Logger:    zap.NewNop(),
	}, nil
}

func (h *harness) seed(t *testing.T, daysAgo int, mood domain.Mood) {
	t.Helper()
	at := noon.AddDate(0, 0, -daysAgo)
	h.repo.WithClock(func() time.Time { return at })
	if _, err := h.repo.Append(context.Background(), mood.Input("")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h.repo.WithClock(h.clock.Now)
}

func (h *harness) entries(t *testing.T) []domain.MoodEntry {
	t.Helper()
	entries, err := h.repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return entries
}

func execute(ctx context.Context, factory Factory, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(factory)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execute(context.Background(), h.factory, args...)
	return out, err
}

func mood(t *testing.T, name string) domain.Mood {
	t.Helper()
	m, ok := domain.MoodByName(name)
	if !ok {
		t.Fatalf("no mood %q", name)
	}
	return m
}
