package command

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
)

func seedMessages(t *testing.T) {
	t.Helper()
	conn, err := db.OpenDatabase(os.Getenv("MENTION_DB"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	messages := []types.Message{
		{TS: 100, From: "sam", Body: "hi @Alice Smith", Mentions: []types.MessageMention{
			{UserID: 1, Start: 3, End: 15, Text: "@Alice Smith"},
		}},
		{TS: 200, From: "sam", Body: "plain"},
		{TS: 300, From: "kim", Body: "@Bob Johnson ok", Mentions: []types.MessageMention{
			{UserID: 2, Start: 0, End: 12, Text: "@Bob Johnson"},
		}},
	}
	for _, message := range messages {
		if _, err := db.CreateMessage(conn, message); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t)
	if _, err := executeCommand(NewRootCmd("test"), "users", "list"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seedMessages(t)

	output, err := executeCommand(NewRootCmd("test"), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(output, "sam") || !strings.Contains(output, "@Bob Johnson → user 2") {
		t.Fatalf("got %q", output)
	}
	if strings.Index(output, "hi @Alice") > strings.Index(output, "plain") {
		t.Fatalf("expected oldest first, got %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "history", "--mentioning", "1", "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var messages []types.Message
	if err := json.Unmarshal([]byte(output), &messages); err != nil {
		t.Fatalf("decode: %v (%q)", err, output)
	}
	if len(messages) != 1 || messages[0].Body != "hi @Alice Smith" {
		t.Fatalf("got %+v", messages)
	}

	if _, err := executeCommand(NewRootCmd("test"), "history", "--mentioning", "99"); err == nil {
		t.Fatal("expected unknown user error")
	}
}

func TestHistoryEmpty(t *testing.T) {
	setupEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(output, "No messages") {
		t.Fatalf("got %q", output)
	}
}
