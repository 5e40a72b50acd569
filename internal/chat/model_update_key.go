package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if handled, cmd := m.handleSuggestionKeys(msg); handled {
		return m, cmd
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.submit()
		return m, nil
	case tea.KeyEsc:
		if m.status != "" {
			m.setStatus("")
		}
		return m, nil
	case tea.KeyCtrlG:
		m.showDebug = !m.showDebug
		return m, nil
	case tea.KeyCtrlO:
		m.showPreview = !m.showPreview
		return m, nil
	case tea.KeyCtrlY:
		m.copyInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncInput()
	return m, cmd
}

func (m *Model) copyInput() {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.setStatus("Nothing to copy.")
		return
	}
	if err := writeClipboard(value); err != nil {
		m.setError(fmt.Errorf("copy: %w", err))
		return
	}
	m.setStatus("Copied input to clipboard.")
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusIsError = true
}
