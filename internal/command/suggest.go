package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/types"
	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "List the candidates the dropdown would offer for query",
		Args:  cobra.MaximumNArgs(1),
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
			limit := ctx.Config.SuggestionLimit
			if cmd.Flags().Changed("limit") {
				limit, _ = cmd.Flags().GetInt("limit")
			}

			query := ""
			if len(args) > 0 {
				query = strings.TrimPrefix(args[0], "@")
			}
			candidates := core.FilterUsers(users, query, limit)
			if ctx.JSONMode {
				if candidates == nil {
					candidates = []types.User{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(candidates)
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "no matches")
				return nil
			}
			for _, user := range candidates {
				fmt.Fprintf(out, "%3d  %s\n", user.ID, user.FullName())
			}
			return nil
		},
	}
	cmd.Flags().String("users", "", "load the user directory from a JSON file")
	cmd.Flags().Int("limit", 0, "maximum candidates (0 = no limit)")
	return cmd
}
