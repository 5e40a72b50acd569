package chat

import (
	"log"

	"github.com/adamavenir/mention/internal/core"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// setCursorMsg carries a deferred cursor move requested by the tracker.
type setCursorMsg struct {
	pos int
}

func newInputModel() textinput.Model {
	input := textinput.New()
	input.Placeholder = "Mention someone..."
	input.Prompt = "› "
	input.Focus()
	applyInputStyles(&input)
	return input
}

func applyInputStyles(input *textinput.Model) {
	input.PromptStyle = lipgloss.NewStyle().Foreground(caretColor)
	input.TextStyle = lipgloss.NewStyle().Foreground(textColor)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(blurText)
}

// syncInput reports widget changes to the tracker: a new value is a text
// change, a new position alone is a cursor move.
func (m *Model) syncInput() {
	value := m.input.Value()
	pos := m.input.Position()
	if value == m.lastInputValue && pos == m.lastInputPos {
		return
	}
	if value != m.lastInputValue {
		m.state = m.tracker.TextChanged(m.state, value, pos)
	} else {
		m.state = m.tracker.CursorMoved(m.state, pos)
	}
	m.lastInputValue = value
	m.lastInputPos = pos
	m.logState("input")
}

// applyTransition installs a tracker result and turns its effect into a
// command that runs after the next render.
func (m *Model) applyTransition(next core.MentionState, effect core.Effect) tea.Cmd {
	m.state = next
	if m.input.Value() != next.Text {
		m.input.SetValue(next.Text)
		m.syncInput()
	}
	m.logState("transition")
	if effect.Kind != core.EffectSetCursor {
		return nil
	}
	pos := effect.Cursor
	return func() tea.Msg {
		return setCursorMsg{pos: pos}
	}
}

func (m *Model) handleSetCursorMsg(msg setCursorMsg) (tea.Model, tea.Cmd) {
	m.input.SetCursor(msg.pos)
	pos := m.input.Position()
	m.state = m.tracker.CursorSettled(m.state, pos)
	m.lastInputPos = pos
	m.logState("cursor settled")
	return m, nil
}

func (m *Model) resetInput() {
	m.input.SetValue("")
	m.input.CursorStart()
	m.syncInput()
}

func (m *Model) logState(event string) {
	log.Printf("mention: %s mode=%s cursor=%d query=%q highlight=%d editing=%d mentions=%d latch=%v",
		event, m.state.Mode(), m.state.Cursor, m.state.Query, m.state.Highlight,
		m.state.EditingID, len(m.state.Mentions), m.state.SuppressDetect)
}
