package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case setCursorMsg:
		return m.handleSetCursorMsg(msg)
	case usersReloadedMsg:
		return m.handleUsersReloadedMsg(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.syncInput()
		return m, cmd
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	return m, nil
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	width := m.width - lipglossWidth(m.input.Prompt) - 1
	if width < 1 {
		width = 1
	}
	m.input.Width = width
}
