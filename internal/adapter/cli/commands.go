package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vibematrix/internal/app"
)

// recentMoods is how many entries the dashboard's energy trend lists.
const recentMoods = 10

func (r *root) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Chart how often each mood was logged",
		Args:  cobra.NoArgs,
		RunE:  r.run(runStats),
	}
}

func (r *root) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, streak, energy and trends",
		Args:  cobra.NoArgs,
		RunE:  r.run(runDashboard),
	}
}

func (r *root) streakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current logging streak and badge",
		Args:  cobra.NoArgs,
		RunE:  r.run(runStreak),
	}
}

func (r *root) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [n]",
		Short: "List the most recent moods",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run(runHistory),
	}
}

func (r *root) gitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "git",
		Short: "Log a mood and show the last commit message",
		Args:  cobra.NoArgs,
		RunE:  r.run(runGit),
	}
}

func (r *root) remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remind [duration]",
		Short:   "Ask for your mood once after a delay (default 1h)",
		Example: "  vibematrix remind 30m",
		Args:    cobra.MaximumNArgs(1),
		RunE:    r.run(runRemind),
	}
}

func (r *root) loopCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "loop [duration]",
		Short:   "Ask for your mood repeatedly (default every 1m)",
		Example: "  vibematrix loop 5m",
		Args:    cobra.MaximumNArgs(1),
		RunE:    r.run(runLoop),
	}
}

func (r *root) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [hourly|daily|weekly] [time] | cancel | show",
		Short: "Save a reminder schedule and wait for it (default daily 9am)",
		Example: `  vibematrix schedule daily 9am
  vibematrix schedule weekly 18:30
  vibematrix schedule cancel`,
		Args: cobra.MaximumNArgs(2),
		RunE: r.run(runSchedule),
	}
}

func (r *root) moodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood",
		Short: "Draw and log a random mood of the day",
		Args:  cobra.NoArgs,
		RunE:  r.run(runMood),
	}
}

func (r *root) autoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto [text]",
		Short: "Predict and log a mood from text or the last commit",
		RunE:  r.run(runAuto),
	}
}

func runLog(ctx context.Context, e *env, _ []string) error {
	return quiet(e.logMood(ctx))
}

// logMood runs one interactive logging round. A failed write is reported
// as a warning only.
func (e *env) logMood(ctx context.Context) error {
	e.p.Banner()
	mood, err := e.Prompter.SelectMood(ctx)
	if err != nil {
		return err
	}
	if e.Journal.ShouldOfferMoodOfTheDay(ctx) {
		e.moodOfTheDay(ctx)
	}
	if _, err := e.Journal.Log(ctx, mood.Input("")); err != nil {
		e.p.Warn("could not save your mood: %v", err)
		return nil
	}
	e.p.Logged(mood, e.Journal.RandomQuote())
	return nil
}

func (e *env) moodOfTheDay(ctx context.Context) {
	mood, quote, err := e.Journal.MoodOfTheDay(ctx)
	if err != nil {
		e.p.Warn("could not save the mood of the day: %v", err)
	}
	e.p.MoodOfTheDay(mood, quote)
}

func runStats(ctx context.Context, e *env, _ []string) error {
	e.p.Banner()
	stats, err := e.Journal.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		e.p.Empty("No vibes logged yet 😢")
		return nil
	}
	e.p.Chart(stats)
	return nil
}

func runDashboard(ctx context.Context, e *env, _ []string) error {
	e.p.Banner()
	sum, err := e.Journal.Dashboard(ctx)
	if err != nil {
		return err
	}
	if sum.Total == 0 {
		e.p.Empty("No mood data found. Start logging first!")
		return nil
	}
	recent, err := e.Journal.History(ctx, recentMoods)
	if err != nil {
		return err
	}
	trend, err := e.Journal.Trend(ctx)
	if err != nil {
		return err
	}
	e.p.Dashboard(sum, recent, trend)
	return nil
}

func runStreak(ctx context.Context, e *env, _ []string) error {
	e.p.Banner()
	info, err := e.Journal.Streak(ctx)
	if err != nil {
		return err
	}
	if info.Days == 0 {
		e.p.Empty("No mood logs yet 😢 Start with `vibematrix` first!")
		return nil
	}
	e.p.Streak(info)
	return nil
}

func runHistory(ctx context.Context, e *env, args []string) error {
	n := e.Config.HistoryLimit
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("history: %q is not a positive number", args[0])
		}
		n = v
	}
	e.p.Banner()
	entries, err := e.Journal.History(ctx, n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		e.p.Empty("No moods logged yet 😢")
		return nil
	}
	e.p.History(entries)
	return nil
}

func runGit(ctx context.Context, e *env, _ []string) error {
	if err := e.logMood(ctx); err != nil {
		return quiet(err)
	}
	msg, err := e.Git.LastCommitMessage(ctx)
	if err != nil {
		e.p.Empty("⚠️ Not a Git repo.")
		return nil
	}
	e.p.Note("Last commit: %q", msg)
	return nil
}

func runRemind(ctx context.Context, e *env, args []string) error {
	arg := argOr(args, 0, "1h")
	d, err := app.ParseInterval(arg)
	if err != nil {
		return fmt.Errorf("remind %q: %w", arg, err)
	}
	e.p.Banner()
	e.p.Notice("⏰ Reminder set! I'll check your vibe in %s...", arg)
	err = e.Runner.Once(ctx, d, func(ctx context.Context) error {
		e.p.Success("🔔 Time's up! Let's log your mood again:")
		return e.logMood(ctx)
	})
	return quiet(err)
}

func runLoop(ctx context.Context, e *env, args []string) error {
	arg := argOr(args, 0, "1m")
	d, err := app.ParseInterval(arg)
	if err != nil {
		return fmt.Errorf("loop %q: %w", arg, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.p.Note("Press CTRL+C anytime to exit.")
	err = e.Runner.Every(ctx, d, e.untilDismissed(cancel, func(ctx context.Context) error {
		if err := e.logMood(ctx); err != nil {
			return err
		}
		e.p.Note("⏳ Next vibe check in %s...", arg)
		return nil
	}))
	return quiet(err)
}

// untilDismissed stops a repeating task when its prompt is dismissed.
func (e *env) untilDismissed(cancel context.CancelFunc, fn app.Task) app.Task {
	return func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, ErrCancelled) {
			cancel()
			return nil
		}
		return err
	}
}

func runSchedule(ctx context.Context, e *env, args []string) error {
	switch argOr(args, 0, "") {
	case "cancel":
		if err := e.Schedules.Clear(ctx); err != nil {
			return err
		}
		e.p.Empty("🛑 Schedule cleared.")
		return nil
	case "show":
		cfg, err := e.Schedules.Current(ctx)
		if err != nil {
			return err
		}
		if cfg == nil {
			e.p.Note("No schedule saved.")
			return nil
		}
		next, err := app.Next(*cfg, e.Clock.Now())
		if err != nil {
			return err
		}
		e.p.Schedule(*cfg, next)
		return nil
	}

	cfg, err := e.Schedules.Save(ctx, argOr(args, 0, "daily"), argOr(args, 1, "9am"))
	if err != nil {
		return err
	}
	next, err := app.Next(cfg, e.Clock.Now())
	if err != nil {
		return err
	}
	e.p.Banner()
	e.p.Success("✅ Schedule saved!")
	e.p.Schedule(cfg, next)
	e.p.Note("Press CTRL+C anytime to exit.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	err = e.Runner.Until(ctx,
		func(after time.Time) (time.Time, error) { return app.Next(cfg, after) },
		e.untilDismissed(cancel, func(ctx context.Context) error {
			e.p.Note("⏰ Scheduled check (%s @ %s)", cfg.Kind, cfg.TimeOfDay)
			return e.logMood(ctx)
		}),
	)
	return quiet(err)
}

func runMood(ctx context.Context, e *env, _ []string) error {
	e.p.Banner()
	e.moodOfTheDay(ctx)
	return nil
}

func runAuto(ctx context.Context, e *env, args []string) error {
	e.p.Banner()
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		msg, err := e.Git.LastCommitMessage(ctx)
		if err == nil && msg != "" {
			e.p.Note("🧠 Analyzing last commit: %q...", msg)
			text = msg
		} else {
			text, err = e.Prompter.AskText(ctx, "💬 Describe what you worked on:")
			if err != nil {
				return quiet(err)
			}
		}
	}
	mood, err := e.Journal.Predict(ctx, text)
	if err != nil {
		e.p.Warn("could not save the predicted mood: %v", err)
	}
	e.p.Predicted(mood)
	return nil
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}
