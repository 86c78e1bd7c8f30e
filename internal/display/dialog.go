package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/troubleshoot"
)

type dialogKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Back   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func (k dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Back, k.Reset, k.Quit}
}

func (k dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Choose}, {k.Back, k.Reset, k.Quit}}
}

func newDialogKeys() dialogKeys {
	return dialogKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Back:   key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start over")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "close")),
	}
}

// TroubleshootModel is the Bubble Tea model for the taste troubleshooting
// dialog. It drives a troubleshoot.Navigator.
type TroubleshootModel struct {
	nav      *troubleshoot.Navigator
	cursor   int
	keys     dialogKeys
	help     help.Model
	err      error
	width    int
	quitting bool
}

// NewTroubleshootModel returns a dialog positioned at the navigator's
// current node.
func NewTroubleshootModel(nav *troubleshoot.Navigator) TroubleshootModel {
	return TroubleshootModel{
		nav:  nav,
		keys: newDialogKeys(),
		help: help.New(),
	}
}

// Cursor returns the highlighted answer index.
func (m TroubleshootModel) Cursor() int { return m.cursor }

// Quitting reports whether the dialog asked to close.
func (m TroubleshootModel) Quitting() bool { return m.quitting }

// Err returns the last navigation error, if any.
func (m TroubleshootModel) Err() error { return m.err }

func (m TroubleshootModel) Init() tea.Cmd { return nil }

func (m TroubleshootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		answers := m.nav.Current().Answers
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(answers)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Choose):
			m.choose(m.cursor)
		case key.Matches(msg, m.keys.Back):
			if m.nav.Back() {
				m.err = nil
				m.cursor = 0
			}
		case key.Matches(msg, m.keys.Reset):
			m.nav.Reset()
			m.err = nil
			m.cursor = 0
		default:
			if n, ok := digit(msg.String()); ok && n <= len(answers) {
				m.cursor = n - 1
				m.choose(m.cursor)
			}
		}
	}
	return m, nil
}

func (m *TroubleshootModel) choose(i int) {
	out, err := m.nav.Choose(i)
	m.err = err
	if err == nil && out.Kind == troubleshoot.OutcomeMoved {
		m.cursor = 0
	}
}

func digit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func (m TroubleshootModel) View() string {
	if m.quitting {
		return ""
	}

	node := m.nav.Current()
	var b strings.Builder

	b.WriteString(stepStyle.Render("Taste troubleshooting"))
	if !m.nav.AtRoot() {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("  (step %d)", m.nav.Depth()+1)))
	}
	b.WriteString("\n\n")
	b.WriteString(chatStyle.Render(node.Question))
	b.WriteString("\n\n")

	for i, a := range node.Answers {
		line := fmt.Sprintf("%d. %s", i+1, a.Label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString(primaryStyle.Render("  " + line))
		}
		b.WriteByte('\n')
	}

	if sol, ok := m.nav.Solution(); ok {
		b.WriteByte('\n')
		b.WriteString(solutionBox.Render(solutionText(sol)))
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render("r: try another issue"))
		b.WriteByte('\n')
	}

	if m.err != nil {
		b.WriteByte('\n')
		b.WriteString(urgentOutputStyle.Render(dialogError(m.err)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func dialogError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		return "That is not one of the options."
	case errors.Is(err, domain.ErrNotFound):
		return "This answer leads nowhere yet. Press r to start over."
	default:
		return err.Error()
	}
}
