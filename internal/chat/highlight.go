package chat

import (
	"os"
	"strings"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/types"
	"github.com/charmbracelet/lipgloss"
)

// highlightMentions renders text with complete mentions on a badge. The
// mention under edit, if any, gets its own colour.
func highlightMentions(text string, mentions []types.Mention, editingID int64) string {
	if text == "" || len(mentions) == 0 || os.Getenv("NO_COLOR") != "" {
		return text
	}
	completeStyle := lipgloss.NewStyle().Foreground(mentionFg).Background(mentionBg)
	editingStyle := completeStyle.Background(editingBg)

	var out strings.Builder
	for _, segment := range core.SplitSegments(text, mentions) {
		switch {
		case segment.Mention == nil || !segment.Complete:
			out.WriteString(segment.Text)
		case editingID != 0 && segment.Mention.ID == editingID:
			out.WriteString(editingStyle.Render(segment.Text))
		default:
			out.WriteString(completeStyle.Render(segment.Text))
		}
	}
	return out.String()
}

// storedMentions adapts persisted spans for highlightMentions.
func storedMentions(mentions []types.MessageMention) []types.Mention {
	out := make([]types.Mention, 0, len(mentions))
	for i, mention := range mentions {
		out = append(out, types.Mention{
			ID:     int64(i + 1),
			Start:  mention.Start,
			End:    mention.End,
			UserID: mention.UserID,
			Text:   mention.Text,
		})
	}
	return out
}
