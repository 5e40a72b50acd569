package command

import (
	"fmt"
	"io"
	"log"

	"github.com/adamavenir/mention/internal/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive mention input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return writeCommandError(cmd, fmt.Errorf("--json not supported for interactive chat"))
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			usersFile, _ := cmd.Flags().GetString("users")
			if usersFile == "" {
				usersFile = ctx.Config.UsersFile
			}
			watch, _ := cmd.Flags().GetBool("watch")
			if watch && usersFile == "" {
				return writeCommandError(cmd, fmt.Errorf("--watch needs a users file (--users or users_file)"))
			}
			debug, _ := cmd.Flags().GetBool("debug")
			prefill, _ := cmd.Flags().GetString("prefill")
			last, _ := cmd.Flags().GetInt("last")
			noPreview, _ := cmd.Flags().GetBool("no-preview")

			if debug {
				logFile, err := tea.LogToFile("mention-debug.log", "")
				if err != nil {
					return writeCommandError(cmd, err)
				}
				defer logFile.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			users, err := ctx.loadUsers(usersFile)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			username, err := ctx.resolveUsername()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			options := chat.Options{
				DB:              ctx.DB,
				Username:        username,
				Users:           users,
				UsersFile:       usersFile,
				Watch:           watch,
				SuggestionLimit: ctx.Config.SuggestionLimit,
				ShowPreview:     ctx.Config.UI.ShowPreview && !noPreview,
				ShowDebug:       ctx.Config.UI.ShowDebug || debug,
				Prefill:         prefill,
				Last:            last,
			}

			if err := chat.Run(options); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().String("users", "", "load the user directory from a JSON file")
	cmd.Flags().Bool("watch", false, "reload the users file when it changes")
	cmd.Flags().Bool("debug", false, "show the state panel and log to mention-debug.log")
	cmd.Flags().String("prefill", "", "start with this text in the input")
	cmd.Flags().Int("last", 10, "show last N sent messages")
	cmd.Flags().Bool("no-preview", false, "hide the highlighted preview line")

	return cmd
}
