package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/types"
	"github.com/spf13/cobra"
)

type parseResult struct {
	Text     string          `json:"text"`
	Mentions []types.Mention `json:"mentions"`
}

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <text>...",
		Short: "Print the mentions recognised in text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			usersFile, _ := cmd.Flags().GetString("users")
			users, err := ctx.loadUsers(usersFile)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			text := strings.Join(args, " ")
			mentions := core.RecomputeMentions(text, users, core.NewSequence(1))
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(parseResult{Text: text, Mentions: mentions})
			}

			out := cmd.OutOrStdout()
			if len(mentions) == 0 {
				fmt.Fprintln(out, "No mentions")
				return nil
			}
			for _, mention := range mentions {
				fmt.Fprintf(out, "%d-%d  user %d  %s\n", mention.Start, mention.End, mention.UserID, mention.Text)
			}
			return nil
		},
	}
	cmd.Flags().String("users", "", "load the user directory from a JSON file")
	return cmd
}
