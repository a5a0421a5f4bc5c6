package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppOptions configures the TUI.
type AppOptions struct {
	// Title is shown in the header, e.g. "cotchat | openai/gpt-4o-mini".
	Title string
	// Relay, when set, streams reasoning steps into the transcript.
	Relay *StepRelay
}

type AppView struct {
	chat  Chatter
	relay *StepRelay
	title string

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	entries []Entry

	width  int
	height int
	ready  bool

	// In-flight turn
	thinking  bool
	turnStart time.Time
	cancel    context.CancelFunc

	showHelp bool
	flash    string

	Quitting bool
}

func NewAppView(chat Chatter, opts AppOptions) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask something, or type /help..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Enter sends; Alt+Enter inserts a newline.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	title := opts.Title
	if title == "" {
		title = "cotchat"
	}

	return AppView{
		chat:     chat,
		relay:    opts.Relay,
		title:    title,
		textarea: ta,
		viewport: viewport.New(0, 0),
		spinner:  newSpinner(),
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	return s
}

func (a AppView) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if a.relay != nil {
		cmds = append(cmds, a.relay.wait())
	}
	return tea.Batch(cmds...)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	title := TitleStyle.Render(a.title)
	if a.thinking {
		elapsed := time.Since(a.turnStart).Round(time.Second)
		title += DimStyle.Render(fmt.Sprintf(" | thinking %s %s", a.spinner.View(), elapsed))
	}

	status := a.flash
	if status == "" {
		status = fitStatus(a.width,
			"Enter", "Send",
			"Alt+Enter", "New Line",
			"Esc", "Cancel",
			"Alt+Y", "Copy",
			"/help", "Commands",
			"Ctrl+C", "Quit",
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.viewport.View(),
		a.textarea.View(),
		StatusStyle.Render(status),
	)
}

// Entries returns the transcript as displayed.
func (a AppView) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a *AppView) addEntry(kind EntryKind, content string) int {
	a.entries = append(a.entries, Entry{
		Kind:      kind,
		Content:   content,
		Rendered:  content,
		Timestamp: time.Now(),
	})
	return len(a.entries) - 1
}

func (a AppView) lastAnswer() (string, bool) {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].Kind == EntryAssistant {
			return a.entries[i].Content, true
		}
	}
	return "", false
}

func (a *AppView) transcript() string {
	var b strings.Builder
	for _, e := range a.entries {
		switch e.Kind {
		case EntryUser:
			fmt.Fprintf(&b, "[%s] You:\n%s\n\n", e.Timestamp.Format("15:04"), e.Content)
		case EntryAssistant:
			fmt.Fprintf(&b, "[%s] Agent:\n%s\n\n", e.Timestamp.Format("15:04"), e.Content)
		}
	}
	return b.String()
}
