package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vibematrix/internal/domain"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the user for input.
type Prompter interface {
	SelectMood(ctx context.Context) (domain.Mood, error)
	AskText(ctx context.Context, question string) (string, error)
}

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"))
	keyCancel = key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"))
)

// moodPicker is a single-choice list over the mood catalog.
type moodPicker struct {
	theme     *Theme
	moods     []domain.Mood
	cursor    int
	chosen    bool
	cancelled bool
}

func (m *moodPicker) Init() tea.Cmd { return nil }

func (m *moodPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keyDown):
		if m.cursor < len(m.moods)-1 {
			m.cursor++
		}
	case key.Matches(k, keyEnter):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(k, keyCancel):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *moodPicker) View() string {
	if m.chosen || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Your vibe today?") + "\n")
	for i, mood := range m.moods {
		if i == m.cursor {
			b.WriteString(m.theme.Fun.Render("❯ "+mood.Name) + "\n")
			continue
		}
		b.WriteString("  " + mood.Name + "\n")
	}
	b.WriteString(m.theme.Muted.Render("↑/↓ to move, enter to pick, esc to quit") + "\n")
	return b.String()
}

// textPrompt reads a single line.
type textPrompt struct {
	theme     *Theme
	question  string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newTextPrompt(theme *Theme, question string) *textPrompt {
	ti := textinput.New()
	ti.Placeholder = "what did you work on?"
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()
	return &textPrompt{theme: theme, question: question, input: ti}
}

func (m *textPrompt) Init() tea.Cmd { return textinput.Blink }

func (m *textPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *textPrompt) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.theme.Title.Render(m.question) + "\n" + m.input.View() + "\n"
}

// TeaPrompter runs bubbletea programs on the given terminal streams.
type TeaPrompter struct {
	in    io.Reader
	out   io.Writer
	theme *Theme
}

var _ Prompter = (*TeaPrompter)(nil)

// NewTeaPrompter creates a prompter reading in and drawing on out.
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out, theme: NewTheme(out)}
}

func (p *TeaPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// SelectMood shows the mood picker.
func (p *TeaPrompter) SelectMood(ctx context.Context) (domain.Mood, error) {
	final, err := p.run(ctx, &moodPicker{theme: p.theme, moods: domain.Moods})
	if err != nil {
		return domain.Mood{}, err
	}
	m := final.(*moodPicker)
	if !m.chosen {
		return domain.Mood{}, ErrCancelled
	}
	return m.moods[m.cursor], nil
}

// AskText asks question and returns the trimmed answer.
func (p *TeaPrompter) AskText(ctx context.Context, question string) (string, error) {
	final, err := p.run(ctx, newTextPrompt(p.theme, question))
	if err != nil {
		return "", err
	}
	m := final.(*textPrompt)
	if !m.done {
		return "", ErrCancelled
	}
	return strings.TrimSpace(m.input.Value()), nil
}
