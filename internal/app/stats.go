package app

import (
	"math"
	"sort"
	"time"

	"vibematrix/internal/domain"
)

// Count is a key with the number of entries carrying it.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// countBy tallies entries by key, keeping keys in first-seen order.
func countBy(entries []domain.MoodEntry, key func(domain.MoodEntry) string) []Count {
	idx := make(map[string]int)
	var out []Count
	for _, e := range entries {
		k := key(e)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count{Key: k})
		}
		out[i].Count++
	}
	return out
}

// mostFrequent picks the highest count. Ties go to the key counted first.
func mostFrequent(counts []Count) (Count, bool) {
	if len(counts) == 0 {
		return Count{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best, true
}

// FrequencyByEmoji counts entries per emoji in first-seen order.
func FrequencyByEmoji(entries []domain.MoodEntry) []Count {
	return countBy(entries, func(e domain.MoodEntry) string { return e.Emoji })
}

// MostFrequentByEmoji returns the most logged emoji and its count.
func MostFrequentByEmoji(entries []domain.MoodEntry) (Count, bool) {
	return mostFrequent(FrequencyByEmoji(entries))
}

// MostFrequentByName returns the most logged mood name and its count. It is
// computed independently of the emoji tally.
func MostFrequentByName(entries []domain.MoodEntry) (Count, bool) {
	return mostFrequent(countBy(entries, func(e domain.MoodEntry) string { return e.Name }))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// AverageEnergy is the mean energy score of entries, rounded to one decimal.
// It is 0 for no entries.
func AverageEnergy(entries []domain.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum int
	for _, e := range entries {
		sum += domain.EnergyScore(e.Emoji)
	}
	return roundTenth(float64(sum) / float64(len(entries)))
}

// Badge is the streak tier.
type Badge string

const (
	BadgeNew        Badge = "new"
	BadgeConsistent Badge = "consistent"
	BadgeFlow       Badge = "flow"
	BadgeZen        Badge = "zen"
)

// Label is the display form of the badge.
func (b Badge) Label() string {
	switch b {
	case BadgeConsistent:
		return "🔥 Consistent"
	case BadgeFlow:
		return "🌊 In the Flow"
	case BadgeZen:
		return "🧘 Zen Master"
	default:
		return "🌱 Just Getting Started"
	}
}

// StreakInfo is the current streak with its badge and the next goal.
type StreakInfo struct {
	Days  int   `json:"days"`
	Badge Badge `json:"badge"`
	Goal  int   `json:"goal"`
}

// Percent is progress toward Goal, capped at 100.
func (s StreakInfo) Percent() float64 {
	if s.Goal <= 0 {
		return 0
	}
	return math.Min(float64(s.Days)/float64(s.Goal)*100, 100)
}

// streakTolerance is the largest gap between consecutive logged days that
// still continues a streak.
const streakTolerance = 1.5 * 24 * time.Hour

func badgeFor(days int) (Badge, int) {
	switch {
	case days >= 14:
		return BadgeZen, 30
	case days >= 7:
		return BadgeFlow, 14
	case days >= 3:
		return BadgeConsistent, 7
	default:
		return BadgeNew, 3
	}
}

// uniqueDays returns the distinct local calendar days of entries as local
// midnights, ascending.
func uniqueDays(entries []domain.MoodEntry) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range entries {
		d := e.Day()
		if seen[d] {
			continue
		}
		seen[d] = true
		t, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CurrentStreak counts consecutive logged days ending at the most recent
// logged day. Gaps up to 1.5 days keep the streak going.
func CurrentStreak(entries []domain.MoodEntry) StreakInfo {
	days := uniqueDays(entries)
	streak := 0
	if len(days) > 0 {
		streak = 1
		for i := len(days) - 1; i > 0; i-- {
			if days[i].Sub(days[i-1]) > streakTolerance {
				break
			}
			streak++
		}
	}
	badge, goal := badgeFor(streak)
	return StreakInfo{Days: streak, Badge: badge, Goal: goal}
}

// DayEnergy is the average energy of one local calendar day.
type DayEnergy struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// trendDays is how many distinct days WeeklyEnergyTrend keeps.
const trendDays = 7

// WeeklyEnergyTrend averages energy per logged day, oldest first, keeping
// the most recent seven days that have entries.
func WeeklyEnergyTrend(entries []domain.MoodEntry) []DayEnergy {
	byDay := make(map[string][]domain.MoodEntry)
	for _, e := range entries {
		d := e.Day()
		byDay[d] = append(byDay[d], e)
	}
	out := make([]DayEnergy, 0, len(byDay))
	for d, es := range byDay {
		out = append(out, DayEnergy{Date: d, Average: AverageEnergy(es)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > trendDays {
		out = out[len(out)-trendDays:]
	}
	return out
}

// RecentHistory returns up to n entries, newest first.
func RecentHistory(entries []domain.MoodEntry, n int) []domain.MoodEntry {
	if n <= 0 {
		return []domain.MoodEntry{}
	}
	out := make([]domain.MoodEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// NoMood is the most-used placeholder of an empty log.
const NoMood = "—"

// Summary is the dashboard snapshot.
type Summary struct {
	Total     int              `json:"total"`
	MostUsed  Count            `json:"mostUsed"`
	Last      domain.MoodEntry `json:"last"`
	AvgEnergy float64          `json:"avgEnergy"`
	Streak    StreakInfo       `json:"streak"`
}

// DashboardSummary composes the dashboard view. Last is the final entry in
// storage order. An empty log yields a zero summary with a placeholder
// most-used mood.
func DashboardSummary(entries []domain.MoodEntry) Summary {
	s := Summary{
		Total:     len(entries),
		MostUsed:  Count{Key: NoMood},
		AvgEnergy: AverageEnergy(entries),
		Streak:    CurrentStreak(entries),
	}
	if top, ok := MostFrequentByName(entries); ok {
		s.MostUsed = top
	}
	if len(entries) > 0 {
		s.Last = entries[len(entries)-1]
	}
	return s
}

// Stats is the frequency chart view.
type Stats struct {
	Total    int     `json:"total"`
	Counts   []Count `json:"counts"`
	MostUsed Count   `json:"mostUsed"`
}

// ComputeStats tallies entries per emoji.
func ComputeStats(entries []domain.MoodEntry) Stats {
	counts := FrequencyByEmoji(entries)
	top, _ := mostFrequent(counts)
	return Stats{Total: len(entries), Counts: counts, MostUsed: top}
}
