package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vibematrix/internal/app"
	"vibematrix/internal/domain"
)

const (
	rule       = "──────────────────────────────"
	chartWidth = 20
	trendWidth = 20
)

var confettiParticles = []string{"✨", "💫", "🌈", "🎊", "🎉", "⭐", "🌟"}

// Printer renders journal views as styled terminal text.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	theme  *Theme
	fast   bool
	silent bool
	intn   func(n int) int
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) blank() {
	_, _ = fmt.Fprintln(p.out)
}

func (p *Printer) rule() {
	p.line(p.theme.Muted, rule)
}

// encourage prints s unless silent mode is on.
func (p *Printer) encourage(style lipgloss.Style, s string) {
	if !p.silent {
		p.line(style, "%s", s)
	}
}

// Warn reports a non-fatal problem on the error stream.
func (p *Printer) Warn(format string, args ...any) {
	_, _ = fmt.Fprintln(p.errOut, p.theme.Warning.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Banner prints the title unless fast mode is on.
func (p *Printer) Banner() {
	if p.fast {
		return
	}
	p.line(p.theme.Title, "⚡ VibeMatrix: Track, Decode & Elevate Your Mood ⚡")
	p.line(p.theme.Muted, "💫 Decode your daily dev energy.")
	p.blank()
}

// Logged confirms a saved mood.
func (p *Printer) Logged(m domain.Mood, quote string) {
	p.blank()
	p.line(p.theme.Success, "%s Logged: %s", m.Emoji, m.Word())
	p.line(p.theme.Warning, "%s", m.Message)
	p.encourage(p.theme.Info, "💬 "+quote)
}

// Empty prints a "nothing logged" notice.
func (p *Printer) Empty(msg string) {
	p.line(p.theme.Error, "%s", msg)
}

// Chart draws one bar per emoji scaled to the most frequent one.
func (p *Printer) Chart(s app.Stats) {
	p.blank()
	p.line(p.theme.Fun, "🧩 VibeMatrix Chart")
	p.blank()
	for _, c := range s.Counts {
		n := int(math.Round(float64(c.Count) / float64(s.MostUsed.Count) * chartWidth))
		_, _ = fmt.Fprintf(p.out, "%s %s %s\n", c.Key,
			p.theme.Success.Render(strings.Repeat("▓", n)),
			p.theme.Muted.Render(fmt.Sprintf("(%d)", c.Count)))
	}
	p.blank()
	p.line(p.theme.Title, "Total: %d | Top Vibe: %s (%d)", s.Total, s.MostUsed.Key, s.MostUsed.Count)
}

// Dashboard prints the summary followed by the recent and weekly energy
// views.
func (p *Printer) Dashboard(s app.Summary, recent []domain.MoodEntry, trend []app.DayEnergy) {
	meter := p.theme.Energy(s.AvgEnergy)
	filled := int(math.Round(s.AvgEnergy))
	bar := strings.Repeat("⚡", filled) + strings.Repeat("·", max(0, 10-filled))

	p.blank()
	p.line(p.theme.Title, "💫 VibeMatrix Dashboard")
	p.rule()
	p.line(p.theme.Success, "📅  Total Logs:      %d", s.Total)
	p.line(p.theme.Warning, "🔥  Current Streak:  %d days", s.Streak.Days)
	p.line(p.theme.Info, "😎  Top Mood:        %s (%d)", s.MostUsed.Key, s.MostUsed.Count)
	p.line(p.theme.Fun, "⚡  Avg Energy:      %.1f/10", s.AvgEnergy)
	p.line(meter, "🔋  Energy Meter:    %s", bar)
	p.line(p.theme.Title, "🧘  Last Mood:       %s %s (%s)", s.Last.Emoji, s.Last.Name, formatTime(s.Last.Date))
	p.rule()

	p.EnergyTrend(recent)
	p.WeeklyTrend(trend)

	switch {
	case s.AvgEnergy >= 8:
		p.encourage(p.theme.Success, "🌟 You're on fire today! Keep up the amazing energy!")
	case s.AvgEnergy >= 5:
		p.encourage(p.theme.Warning, "💪 You're doing great, stay consistent!")
	default:
		p.encourage(p.theme.Error, "🧘 Take a short break. You've earned it.")
	}
}

// EnergyTrend lists the given entries with a half-scale energy bar.
func (p *Printer) EnergyTrend(recent []domain.MoodEntry) {
	if len(recent) == 0 {
		return
	}
	p.blank()
	p.line(p.theme.Title, "⚡ Energy Trend (Last %d Moods)", len(recent))
	p.rule()
	for _, e := range recent {
		energy := domain.EnergyScore(e.Emoji)
		bar := strings.Repeat("⚡", int(math.Round(float64(energy)/2)))
		_, _ = fmt.Fprintf(p.out, "%s %-18s %s\n", e.Emoji, e.Name, p.theme.Energy(float64(energy)).Render(bar))
	}
	p.rule()
}

// WeeklyTrend draws one bar per day on a 20-cell scale.
func (p *Printer) WeeklyTrend(trend []app.DayEnergy) {
	if len(trend) == 0 {
		return
	}
	p.blank()
	p.line(p.theme.Title, "📆 Weekly Energy Overview")
	p.rule()
	for _, d := range trend {
		n := min(trendWidth, int(math.Round(d.Average/10*trendWidth)))
		bar := strings.Repeat("█", n) + strings.Repeat("░", trendWidth-n)
		label := d.Date
		if t, err := time.ParseInLocation("2006-01-02", d.Date, time.Local); err == nil {
			label = t.Format("Mon")
		}
		_, _ = fmt.Fprintf(p.out, "%-4s %s %s\n", label, p.theme.Energy(d.Average).Render(bar), p.theme.Muted.Render(fmt.Sprintf("%.1f", d.Average)))
	}
	p.rule()
}

// Streak prints the streak, badge and progress toward the next goal.
func (p *Printer) Streak(s app.StreakInfo) {
	pct := s.Percent()
	n := int(math.Round(pct / 5))
	bar := strings.Repeat("▓", n) + strings.Repeat("▒", 20-n)

	p.blank()
	p.line(p.theme.Title, "🔥 Vibe Streak Tracker")
	p.rule()
	p.line(p.theme.Success, "📆  Current Streak:  %d days", s.Days)
	p.line(p.theme.Warning, "🏆  Badge:           %s", s.Badge.Label())
	p.line(p.theme.Fun, "%s %.0f%% of %d days", bar, pct, s.Goal)
	p.rule()
	p.encourage(p.theme.Info, "⚡ Keep it up! You're building serious consistency 💪")
}

// History prints a newest-first timeline.
func (p *Printer) History(entries []domain.MoodEntry) {
	p.blank()
	p.line(p.theme.Title, "📜 Mood History Timeline")
	p.rule()
	for _, e := range entries {
		dot := p.theme.rainbow[p.intn(len(p.theme.rainbow))].Render("●")
		_, _ = fmt.Fprintf(p.out, "%s %s %s %s\n", dot, e.Emoji, e.Name, p.theme.Muted.Render("· "+formatTime(e.Date)))
	}
	p.rule()
	p.encourage(p.theme.Warning, "✨ Keep tracking, your vibes tell a story!")
	p.Confetti()
}

// Confetti prints a line of random particles unless fast mode is on.
func (p *Printer) Confetti() {
	if p.fast {
		return
	}
	var b strings.Builder
	for range 50 {
		style := p.theme.rainbow[p.intn(len(p.theme.rainbow))]
		b.WriteString(style.Render(confettiParticles[p.intn(len(confettiParticles))]))
	}
	p.blank()
	_, _ = fmt.Fprintln(p.out, b.String())
	p.blank()
}

// MoodOfTheDay announces the drawn mood.
func (p *Printer) MoodOfTheDay(m domain.Mood, quote string) {
	p.blank()
	p.line(p.theme.Title, "🌞 Mood of the Day")
	p.rule()
	p.line(p.theme.Success, "%s %s: %s", m.Emoji, m.Word(), m.Message)
	p.line(p.theme.Warning, "💬 %s", quote)
	p.rule()
	p.encourage(p.theme.Info, "✨ Take this energy into your day! 💫")
}

// Predicted announces a mood inferred from text.
func (p *Printer) Predicted(m domain.Mood) {
	p.blank()
	p.line(p.theme.Success, "%s Predicted: %s", m.Emoji, m.Word())
	p.line(p.theme.Warning, "%s", m.Message)
	p.encourage(p.theme.Info, "💡 Mood auto-logged based on your activity!")
}

// Schedule describes a saved schedule and its next fire time.
func (p *Printer) Schedule(cfg domain.ScheduleConfig, next time.Time) {
	p.line(p.theme.Title, "🗓  Reminding you %s at %s.", cfg.Kind, cfg.TimeOfDay)
	p.line(p.theme.Muted, "Next check: %s", formatTime(next))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.In(time.Local).Format("Mon Jan 2 2006 15:04")
}

// Note prints a muted line.
func (p *Printer) Note(format string, args ...any) {
	p.line(p.theme.Muted, format, args...)
}

// Notice prints a highlighted line.
func (p *Printer) Notice(format string, args ...any) {
	p.line(p.theme.Warning, format, args...)
}

// Success prints a green line.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.theme.Success, format, args...)
}
