package chat

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
)

var errEmptyMessage = errors.New("message is empty")

func (m *Model) submit() {
	body := m.input.Value()
	if strings.TrimSpace(body) == "" {
		m.setError(errEmptyMessage)
		return
	}

	message := types.Message{
		TS:       m.now().Unix(),
		From:     m.username,
		Body:     body,
		Mentions: db.ToMessageMentions(m.state.Mentions),
	}

	if m.db != nil {
		created, err := db.CreateMessage(m.db, message)
		if err != nil {
			m.setError(fmt.Errorf("send: %w", err))
			return
		}
		message = created
	} else {
		guid, err := core.GenerateGUID("msg")
		if err != nil {
			m.setError(err)
			return
		}
		message.GUID = guid
	}

	m.messages = append(m.messages, message)
	if m.lastLimit > 0 && len(m.messages) > m.lastLimit {
		m.messages = m.messages[len(m.messages)-m.lastLimit:]
	}
	log.Printf("mention: sent %s with %d mentions", message.GUID, len(message.Mentions))
	m.resetInput()
	m.setStatus(sentStatus(message))
}

func sentStatus(message types.Message) string {
	switch len(message.Mentions) {
	case 0:
		return "Sent."
	case 1:
		return "Sent with 1 mention."
	default:
		return fmt.Sprintf("Sent with %d mentions.", len(message.Mentions))
	}
}
