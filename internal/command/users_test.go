package command

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
)

func TestUsersListSeedsDefaults(t *testing.T) {
	setupEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "users", "list")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	for _, want := range []string{"1  Alice Smith", "2  Bob Johnson", "3  Charlie Brown"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}
}

func TestUsersListMatch(t *testing.T) {
	setupEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "users", "list", "--match", "*BRO*", "--json")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	var users []types.User
	if err := json.Unmarshal([]byte(output), &users); err != nil {
		t.Fatalf("decode: %v (%q)", err, output)
	}
	if len(users) != 1 || users[0].Name != "Charlie" {
		t.Fatalf("got %+v", users)
	}

	if _, err := executeCommand(NewRootCmd("test"), "users", "list", "--match", "[a"); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}

func TestUsersAddRemove(t *testing.T) {
	setupEnv(t)

	output, err := executeCommand(NewRootCmd("test"), "users", "add", "Dana", "Scully")
	if err != nil {
		t.Fatalf("users add: %v", err)
	}
	if !strings.Contains(output, "Added Dana Scully (id 4)") {
		t.Fatalf("got %q", output)
	}

	if _, err := executeCommand(NewRootCmd("test"), "users", "add", "Mary Jane", "Watson"); err == nil {
		t.Fatal("expected multi-word name to be rejected")
	}

	if _, err := executeCommand(NewRootCmd("test"), "users", "rm", "4"); err != nil {
		t.Fatalf("users rm: %v", err)
	}
	if _, err := executeCommand(NewRootCmd("test"), "users", "rm", "4"); err == nil {
		t.Fatal("expected missing user error")
	}
	if _, err := executeCommand(NewRootCmd("test"), "users", "rm", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestUsersImportExport(t *testing.T) {
	dir := setupEnv(t)

	in := filepath.Join(dir, "in.json")
	if err := db.WriteUsersFile(in, []types.User{
		{ID: 2, Name: "Robert", LastName: "Johnson"},
		{ID: 7, Name: "Zoë", LastName: "Ångström"},
	}); err != nil {
		t.Fatalf("write users: %v", err)
	}
	output, err := executeCommand(NewRootCmd("test"), "users", "import", in)
	if err != nil {
		t.Fatalf("users import: %v", err)
	}
	if !strings.Contains(output, "Imported 2 users") {
		t.Fatalf("got %q", output)
	}

	out := filepath.Join(dir, "out.json")
	if _, err := executeCommand(NewRootCmd("test"), "users", "export", out); err != nil {
		t.Fatalf("users export: %v", err)
	}
	users, err := db.ReadUsersFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("users: got %+v", users)
	}
	if users[1].Name != "Robert" || users[3].FullName() != "Zoë Ångström" {
		t.Fatalf("unexpected directory %+v", users)
	}
}
