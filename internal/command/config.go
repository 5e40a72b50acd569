package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	"github.com/spf13/cobra"
)

type configReport struct {
	Path     string              `json:"path"`
	Config   core.Config         `json:"config"`
	Settings []types.ConfigEntry `json:"settings"`
}

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			settings, err := db.GetAllConfig(ctx.DB)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if ctx.JSONMode {
				if settings == nil {
					settings = []types.ConfigEntry{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(configReport{
					Path:     ctx.ConfigPath,
					Config:   ctx.Config,
					Settings: settings,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", ctx.ConfigPath)
			fmt.Fprintf(out, "  db_path: %s\n", ctx.Config.DBPath)
			fmt.Fprintf(out, "  users_file: %s\n", ctx.Config.UsersFile)
			fmt.Fprintf(out, "  username: %s\n", ctx.Config.Username)
			fmt.Fprintf(out, "  suggestion_limit: %d\n", ctx.Config.SuggestionLimit)
			fmt.Fprintf(out, "  ui.show_preview: %v\n", ctx.Config.UI.ShowPreview)
			fmt.Fprintf(out, "  ui.show_debug: %v\n", ctx.Config.UI.ShowDebug)
			if len(settings) > 0 {
				fmt.Fprintln(out, "Stored settings:")
				for _, entry := range settings {
					fmt.Fprintf(out, "  %s: %s\n", entry.Key, entry.Value)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigSetCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				resolved, err := core.ConfigPath()
				if err != nil {
					return writeCommandError(cmd, err)
				}
				path = resolved
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return writeCommandError(cmd, fmt.Errorf("config already exists at %s (use --force to overwrite)", path))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return writeCommandError(cmd, err)
			}

			if err := core.WriteConfig(path, core.DefaultConfig(filepath.Dir(path))); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the database (e.g. username)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.DB.Close()

			key := normalizeConfigKey(args[0])
			if err := db.SetConfig(ctx.DB, key, args[1]); err != nil {
				return writeCommandError(cmd, err)
			}
			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{key: args[1]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, args[1])
			return nil
		},
	}
}

func normalizeConfigKey(value string) string {
	return strings.ReplaceAll(value, "-", "_")
}
