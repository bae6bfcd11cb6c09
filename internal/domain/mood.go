// Package domain contains the core journal entities and the ports that
// storage adapters implement.
package domain

import (
	"context"
	"strings"
	"time"
)

// Entry tags distinguishing generated entries from user-initiated ones.
const (
	TagAuto      = "auto"
	TagPredicted = "predicted"
)

// MoodEntry is a single persisted mood log record.
type MoodEntry struct {
	ID      string    `json:"id,omitempty"`
	Name    string    `json:"name"`
	Emoji   string    `json:"emoji"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Tag     string    `json:"tag,omitempty"`
}

// Day returns the local calendar day of the entry as YYYY-MM-DD.
func (e MoodEntry) Day() string {
	return e.Date.In(time.Local).Format("2006-01-02")
}

// MoodInput is what callers hand to a store; the store assigns Date and ID.
type MoodInput struct {
	Name    string `json:"name" validate:"required"`
	Emoji   string `json:"emoji" validate:"required"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty" validate:"omitempty,oneof=auto predicted"`
}

// Mood is one kind in the fixed mood catalog.
type Mood struct {
	Name    string
	Emoji   string
	Message string
}

// Word returns the label without its leading emoji ("😊 Happy" -> "Happy").
func (m Mood) Word() string {
	if _, word, ok := strings.Cut(m.Name, " "); ok {
		return word
	}
	return m.Name
}

// Input converts the mood into a store input carrying the given tag.
func (m Mood) Input(tag string) MoodInput {
	return MoodInput{Name: m.Name, Emoji: m.Emoji, Message: m.Message, Tag: tag}
}

// Moods is the catalog offered by the interactive picker.
var Moods = []Mood{
	{Name: "😊 Happy", Emoji: "😊", Message: "You're glowing with joy today!"},
	{Name: "😎 Chill", Emoji: "😎", Message: "Cool vibes only, keep it relaxed."},
	{Name: "😔 Sad", Emoji: "😔", Message: "It's okay to feel down, you're doing great."},
	{Name: "😡 Angry", Emoji: "😡", Message: "Take a deep breath, you've got this!"},
	{Name: "🤩 Excited", Emoji: "🤩", Message: "The world's not ready for your energy!"},
	{Name: "😴 Tired", Emoji: "😴", Message: "You deserve a break. Recharge and come back strong!"},
	{Name: "🤔 Curious", Emoji: "🤔", Message: "Curiosity fuels creation, explore boldly!"},
	{Name: "💪 Motivated", Emoji: "💪", Message: "Unstoppable energy detected, crush it today!"},
	{Name: "🧘 Calm", Emoji: "🧘", Message: "Serenity and balance, the best mindset to have."},
}

// MoodByName looks up a catalog mood by its full display name.
func MoodByName(name string) (Mood, bool) {
	for _, m := range Moods {
		if m.Name == name {
			return m, true
		}
	}
	return Mood{}, false
}

// MoodRepository is the port for mood log persistence.
type MoodRepository interface {
	LoadAll(ctx context.Context) ([]MoodEntry, error)
	Append(ctx context.Context, in MoodInput) (MoodEntry, error)
}
