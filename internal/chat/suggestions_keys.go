package chat

import (
	"github.com/adamavenir/mention/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

func mentionKeyFor(msg tea.KeyMsg) core.MentionKey {
	switch msg.Type {
	case tea.KeyDown, tea.KeyCtrlN:
		return core.KeyArrowDown
	case tea.KeyUp, tea.KeyCtrlP:
		return core.KeyArrowUp
	case tea.KeyEnter, tea.KeyTab:
		return core.KeyEnter
	case tea.KeyEsc:
		return core.KeyEscape
	}
	return core.KeyNone
}

func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := mentionKeyFor(msg)
	if key == core.KeyNone {
		return false, nil
	}
	next, effect, handled := m.tracker.HandleKey(m.state, key)
	if !handled {
		return false, nil
	}
	return true, m.applyTransition(next, effect)
}

// selectSuggestion confirms the candidate at index, as a pointer click does.
func (m *Model) selectSuggestion(index int) tea.Cmd {
	if !m.state.ShowSuggestions {
		return nil
	}
	candidates := m.tracker.Candidates(m.state)
	if index < 0 || index >= len(candidates) {
		return nil
	}
	next, effect := m.tracker.Confirm(m.state, candidates[index])
	return m.applyTransition(next, effect)
}
