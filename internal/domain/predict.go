package domain

import "strings"

// Mood kinds produced by PredictMood.
var (
	MoodFocused    = Mood{Name: "🤖 Focused", Emoji: "🤖", Message: "Deep work mode engaged, stay in the zone."}
	MoodProductive = Mood{Name: "😎 Productive", Emoji: "😎", Message: "Shipping things! Keep that momentum going."}
	MoodFrustrated = Mood{Name: "😡 Frustrated", Emoji: "😡", Message: "Bugs happen. Step back, breathe, then squash it."}
	MoodCheerful   = Mood{Name: "😂 Cheerful", Emoji: "😂", Message: "Good vibes are contagious, spread them around!"}
	MoodTired      = Mood{Name: "😴 Tired", Emoji: "😴", Message: "You deserve a break. Recharge and come back strong!"}
)

// Checked in order; the first rule with a matching keyword wins.
var predictionRules = []struct {
	keywords []string
	mood     Mood
}{
	{[]string{"fix", "refactor", "clean", "update"}, MoodFocused},
	{[]string{"add", "create", "launch", "feature"}, MoodProductive},
	{[]string{"bug", "issue", "fail", "error"}, MoodFrustrated},
	{[]string{"fun", "cool", "awesome", "nice"}, MoodCheerful},
	{[]string{"tired", "sleep", "zzz", "break"}, MoodTired},
}

// PredictMood classifies free text, typically a commit message, by
// case-insensitive substring match. Text matching no rule is Focused.
func PredictMood(text string) Mood {
	lower := strings.ToLower(text)
	for _, r := range predictionRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.mood
			}
		}
	}
	return MoodFocused
}
