package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/types"
)

// ToMessageMentions converts live spans into persisted ones.
func ToMessageMentions(mentions []types.Mention) []types.MessageMention {
	out := make([]types.MessageMention, 0, len(mentions))
	for _, mention := range mentions {
		out = append(out, types.MessageMention{
			UserID: mention.UserID,
			Start:  mention.Start,
			End:    mention.End,
			Text:   mention.Text,
		})
	}
	return out
}

// CreateMessage inserts a message with its mention spans.
func CreateMessage(db *sql.DB, message types.Message) (types.Message, error) {
	if strings.TrimSpace(message.Body) == "" {
		return types.Message{}, fmt.Errorf("message body is empty")
	}
	ts := message.TS
	if ts == 0 {
		ts = time.Now().Unix()
	}

	guid, err := generateUniqueGUIDForTable(db, "mention_messages", "msg")
	if err != nil {
		return types.Message{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return types.Message{}, err
	}
	if _, err := tx.Exec(
		"INSERT INTO mention_messages (guid, ts, from_user, body) VALUES (?, ?, ?, ?)",
		guid, ts, message.From, message.Body,
	); err != nil {
		_ = tx.Rollback()
		return types.Message{}, err
	}
	for _, mention := range message.Mentions {
		if _, err := tx.Exec(`
			INSERT INTO mention_message_mentions (message_guid, user_id, start_offset, end_offset, text)
			VALUES (?, ?, ?, ?, ?)
		`, guid, mention.UserID, mention.Start, mention.End, mention.Text); err != nil {
			_ = tx.Rollback()
			return types.Message{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return types.Message{}, err
	}

	message.GUID = guid
	message.TS = ts
	if message.Mentions == nil {
		message.Mentions = []types.MessageMention{}
	}
	return message, nil
}

// GetMessages returns the last limit messages, oldest first. A limit of zero
// or less returns everything.
func GetMessages(db *sql.DB, limit int) ([]types.Message, error) {
	query := "SELECT guid, ts, from_user, body FROM mention_messages ORDER BY ts DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryMessages(db, query, args...)
}

// GetMessagesMentioning returns the last limit messages that mention userID,
// oldest first.
func GetMessagesMentioning(db *sql.DB, userID int64, limit int) ([]types.Message, error) {
	query := `
		SELECT m.guid, m.ts, m.from_user, m.body FROM mention_messages m
		WHERE EXISTS (
			SELECT 1 FROM mention_message_mentions mm
			WHERE mm.message_guid = m.guid AND mm.user_id = ?
		)
		ORDER BY m.ts DESC, m.rowid DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryMessages(db, query, args...)
}

func queryMessages(db *sql.DB, query string, args ...any) ([]types.Message, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	var messages []types.Message
	for rows.Next() {
		var msg types.Message
		if err := rows.Scan(&msg.GUID, &msg.TS, &msg.From, &msg.Body); err != nil {
			_ = rows.Close()
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range messages {
		mentions, err := getMessageMentions(db, messages[i].GUID)
		if err != nil {
			return nil, err
		}
		messages[i].Mentions = mentions
	}
	reverseMessages(messages)
	return messages, nil
}

func getMessageMentions(db *sql.DB, guid string) ([]types.MessageMention, error) {
	rows, err := db.Query(`
		SELECT user_id, start_offset, end_offset, text FROM mention_message_mentions
		WHERE message_guid = ? ORDER BY start_offset
	`, guid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentions := []types.MessageMention{}
	for rows.Next() {
		var mention types.MessageMention
		if err := rows.Scan(&mention.UserID, &mention.Start, &mention.End, &mention.Text); err != nil {
			return nil, err
		}
		mentions = append(mentions, mention)
	}
	return mentions, rows.Err()
}

func reverseMessages(messages []types.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}

func generateUniqueGUIDForTable(db *sql.DB, table, prefix string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		guid, err := core.GenerateGUID(prefix)
		if err != nil {
			return "", err
		}
		row := db.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE guid = ?", table), guid)
		var exists int
		err = row.Scan(&exists)
		if err == sql.ErrNoRows {
			return guid, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to generate unique %s GUID", prefix)
}
