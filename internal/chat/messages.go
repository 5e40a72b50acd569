package chat

import (
	"strings"
	"time"

	"github.com/adamavenir/mention/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m *Model) renderMessages() string {
	if len(m.messages) == 0 {
		return lipgloss.NewStyle().Foreground(blurText).Render("No messages yet. Type @ to mention someone.")
	}
	lines := make([]string, 0, len(m.messages))
	for _, message := range m.messages {
		lines = append(lines, m.formatMessage(message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) formatMessage(message types.Message) string {
	meta := lipgloss.NewStyle().Foreground(metaColor)
	from := lipgloss.NewStyle().Foreground(userColor).Bold(true)

	when := humanize.RelTime(time.Unix(message.TS, 0), m.now(), "ago", "from now")
	body := highlightMentions(message.Body, storedMentions(message.Mentions), 0)
	author := message.From
	if author == "" {
		author = "anon"
	}
	return meta.Render(when) + " " + from.Render(author) + " " + body
}
