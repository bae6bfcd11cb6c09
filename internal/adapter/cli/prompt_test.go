package cli

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"vibematrix/internal/domain"
)

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func TestMoodPicker(t *testing.T) {
	picker := &moodPicker{theme: NewTheme(io.Discard), moods: domain.Moods}
	assert.Contains(t, picker.View(), "❯ "+domain.Moods[0].Name)

	m, cmd := press(picker,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	got := m.(*moodPicker)
	assert.True(t, got.chosen)
	assert.Equal(t, 1, got.cursor)
	assert.NotNil(t, cmd)
	assert.Empty(t, got.View())
}

func TestMoodPickerBounds(t *testing.T) {
	picker := &moodPicker{theme: NewTheme(io.Discard), moods: domain.Moods}

	press(picker, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, picker.cursor)

	for range len(domain.Moods) + 3 {
		press(picker, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	assert.Equal(t, len(domain.Moods)-1, picker.cursor)
}

func TestMoodPickerCancel(t *testing.T) {
	picker := &moodPicker{theme: NewTheme(io.Discard), moods: domain.Moods}

	press(picker, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, picker.cancelled)
	assert.False(t, picker.chosen)
}

func TestTextPrompt(t *testing.T) {
	prompt := newTextPrompt(NewTheme(io.Discard), "What did you do?")
	assert.Contains(t, prompt.View(), "What did you do?")

	press(prompt, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fixed a bug")})
	press(prompt, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, prompt.done)
	assert.Equal(t, "fixed a bug", prompt.input.Value())
}

func TestTextPromptCancel(t *testing.T) {
	prompt := newTextPrompt(NewTheme(io.Discard), "?")

	press(prompt, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, prompt.cancelled)
}
