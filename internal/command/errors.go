package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Error: %s\n", err.Error())
	if isSchemaError(err) {
		fmt.Fprintln(out, schemaHint(cmd))
	}
	return err
}

// schemaHint names the database the command opened so the user knows which
// file predates the current tables.
func schemaHint(cmd *cobra.Command) string {
	target := "the database at db_path"
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		target = dbPath
	}
	return fmt.Sprintf("Hint: %s was created by an older mention schema. Move it aside or pass --db (or MENTION_DB) with a fresh path.", target)
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{"no such column", "no such table", "has no column"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
