package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show sent messages and their mentions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			last, _ := cmd.Flags().GetInt("last")
			mentioning, _ := cmd.Flags().GetInt64("mentioning")

			var messages []types.Message
			if mentioning > 0 {
				user, err := db.GetUser(ctx.DB, mentioning)
				if err != nil {
					return writeCommandError(cmd, err)
				}
				if user == nil {
					return writeCommandError(cmd, fmt.Errorf("user %d not found", mentioning))
				}
				messages, err = db.GetMessagesMentioning(ctx.DB, mentioning, last)
				if err != nil {
					return writeCommandError(cmd, err)
				}
			} else {
				messages, err = db.GetMessages(ctx.DB, last)
				if err != nil {
					return writeCommandError(cmd, err)
				}
			}

			if ctx.JSONMode {
				if messages == nil {
					messages = []types.Message{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(messages)
			}

			out := cmd.OutOrStdout()
			if len(messages) == 0 {
				fmt.Fprintln(out, "No messages")
				return nil
			}
			for _, message := range messages {
				from := message.From
				if from == "" {
					from = "anon"
				}
				fmt.Fprintf(out, "[%s] %s (%s): %s\n", message.GUID, from, humanize.Time(time.Unix(message.TS, 0)), message.Body)
				for _, mention := range message.Mentions {
					fmt.Fprintf(out, "    %s → user %d\n", mention.Text, mention.UserID)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("last", 20, "show last N messages")
	cmd.Flags().Int64("mentioning", 0, "only messages that mention this user id")
	return cmd
}
