package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.state.ShowSuggestions {
		return m, nil
	}
	candidates := m.tracker.Candidates(m.state)
	for i := range candidates {
		if m.zoneManager.Get(suggestionZoneID(i)).InBounds(msg) {
			return m, m.selectSuggestion(i)
		}
	}
	return m, nil
}
