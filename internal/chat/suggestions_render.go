package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func suggestionZoneID(index int) string {
	return fmt.Sprintf("suggestion-%d", index)
}

func (m *Model) suggestionHeight() int {
	if !m.state.ShowSuggestions {
		return 0
	}
	return lipgloss.Height(m.renderSuggestions())
}

func (m *Model) renderSuggestions() string {
	if !m.state.ShowSuggestions {
		return ""
	}
	normalStyle := lipgloss.NewStyle().Foreground(metaColor)
	selectedStyle := lipgloss.NewStyle().Foreground(userColor).Background(selectedBg).Bold(true)

	candidates := m.tracker.Candidates(m.state)
	if len(candidates) == 0 {
		return normalStyle.Italic(true).Render("  no matches")
	}

	highlight := m.tracker.HighlightIndex(m.state)
	lines := make([]string, 0, len(candidates))
	for i, user := range candidates {
		prefix := "  "
		style := normalStyle
		if i == highlight {
			prefix = "> "
			style = selectedStyle
		}
		line := prefix + user.FullName()
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		lines = append(lines, m.zoneManager.Mark(suggestionZoneID(i), style.Render(line)))
	}
	return strings.Join(lines, "\n")
}
