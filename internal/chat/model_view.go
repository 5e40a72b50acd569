package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) View() string {
	lines := []string{m.renderMessages()}
	if suggestions := m.renderSuggestions(); suggestions != "" {
		lines = append(lines, suggestions)
	}
	lines = append(lines, m.input.View())
	if m.showPreview {
		lines = append(lines, m.renderPreview())
	}
	if m.showDebug {
		lines = append(lines, m.renderDebugPanel())
	}
	lines = append(lines, m.renderStatusLine())
	return m.zoneManager.Scan(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderPreview() string {
	label := lipgloss.NewStyle().Foreground(previewLabel).Render("preview ")
	body := highlightMentions(m.state.Text, m.state.Mentions, m.state.EditingID)
	if body == "" {
		body = lipgloss.NewStyle().Foreground(blurText).Render("(empty)")
	}
	return label + body
}

func (m *Model) renderDebugPanel() string {
	mentions, err := json.MarshalIndent(m.state.Mentions, "", "  ")
	if err != nil {
		mentions = []byte(err.Error())
	}
	editing := "none"
	if m.state.EditingID != 0 {
		editing = fmt.Sprintf("%d (from %d)", m.state.EditingID, m.state.EditStart)
	}
	rows := []string{
		fmt.Sprintf("Mode: %s", m.state.Mode()),
		fmt.Sprintf("Cursor: %d", m.state.Cursor),
		fmt.Sprintf("Query: %q", m.state.Query),
		fmt.Sprintf("Highlight: %d", m.state.Highlight),
		fmt.Sprintf("Editing: %s", editing),
		fmt.Sprintf("Just Selected: %v", m.state.SuppressDetect),
		fmt.Sprintf("Show Suggestions: %v", m.state.ShowSuggestions),
		"Mentions: " + string(mentions),
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(panelBorder).
		Foreground(metaColor).
		Padding(0, 1)
	if m.width > 4 {
		style = style.Width(m.width - 2)
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderStatusLine() string {
	if m.status != "" {
		color := statusColor
		if m.statusIsError {
			color = errorColor
		}
		return lipgloss.NewStyle().Foreground(color).Render(m.truncate(m.status))
	}
	hint := "enter send · ↑/↓ choose · tab/enter pick · esc close · ctrl+o preview · ctrl+g debug · ctrl+y copy"
	return lipgloss.NewStyle().Foreground(statusColor).Render(m.truncate(hint))
}

func (m *Model) truncate(line string) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.width, "…")
}

func lipglossWidth(value string) int {
	return lipgloss.Width(value)
}
