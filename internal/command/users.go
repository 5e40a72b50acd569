package command

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users command group.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the mention directory",
	}

	cmd.AddCommand(
		newUsersListCmd(),
		newUsersAddCmd(),
		newUsersRemoveCmd(),
		newUsersImportCmd(),
		newUsersExportCmd(),
	)
	return cmd
}

func newUsersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users in directory order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			users, err := db.GetUsers(ctx.DB)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			pattern, _ := cmd.Flags().GetString("match")
			if pattern != "" {
				users, err = matchUsers(users, pattern)
				if err != nil {
					return writeCommandError(cmd, err)
				}
			}

			if ctx.JSONMode {
				if users == nil {
					users = []types.User{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(users)
			}
			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, "No users")
				return nil
			}
			for _, user := range users {
				fmt.Fprintf(out, "%3d  %s\n", user.ID, user.FullName())
			}
			return nil
		},
	}
	cmd.Flags().String("match", "", "filter by full-name glob, e.g. \"b*\"")
	return cmd
}

// matchUsers keeps users whose full name matches pattern, ignoring case.
func matchUsers(users []types.User, pattern string) ([]types.User, error) {
	matcher, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid --match pattern %q: %w", pattern, err)
	}
	var matched []types.User
	for _, user := range users {
		if matcher.Match(strings.ToLower(user.FullName())) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func newUsersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <last-name>",
		Short: "Add a user to the end of the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			user, err := db.AddUser(ctx.DB, args[0], args[1])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d)\n", user.FullName(), user.ID)
			return nil
		},
	}
}

func newUsersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeCommandError(cmd, fmt.Errorf("invalid user id %q", args[0]))
			}
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			removed, err := db.RemoveUser(ctx.DB, id)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if !removed {
				return writeCommandError(cmd, fmt.Errorf("user %d not found", id))
			}
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int64{"removed": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %d\n", id)
			return nil
		},
	}
}

func newUsersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Upsert users from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := db.ReadUsersFile(args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			count, err := db.ImportUsers(ctx.DB, users)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int{"imported": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users\n", count)
			return nil
		},
	}
}

func newUsersExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.json>",
		Short: "Write the directory to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			users, err := db.GetUsers(ctx.DB)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if err := db.WriteUsersFile(args[0], users); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d users to %s\n", len(users), args[0])
			return nil
		},
	}
}
