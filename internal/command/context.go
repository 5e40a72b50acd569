package command

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	"github.com/spf13/cobra"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	DB         *sql.DB
	Config     core.Config
	ConfigPath string
	JSONMode   bool
}

// loadConfig resolves the config file from --config or the environment and
// applies --db on top.
func loadConfig(cmd *cobra.Command) (core.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		resolved, err := core.ConfigPath()
		if err != nil {
			return core.Config{}, "", err
		}
		path = resolved
	}
	config, err := core.LoadConfig(path)
	if err != nil {
		return core.Config{}, "", err
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		config.DBPath = dbPath
	}
	return config, path, nil
}

// GetContext loads config and opens the database, seeding the demo directory
// on first use.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	jsonMode, _ := cmd.Flags().GetBool("json")

	config, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	conn, err := db.OpenDatabase(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", config.DBPath, err)
	}
	if _, err := db.SeedDefaultUsers(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &CommandContext{
		DB:         conn,
		Config:     config,
		ConfigPath: path,
		JSONMode:   jsonMode,
	}, nil
}

// loadUsers returns the directory from usersFile when set, else from the
// database.
func (ctx *CommandContext) loadUsers(usersFile string) ([]types.User, error) {
	if usersFile != "" {
		return db.ReadUsersFile(usersFile)
	}
	return db.GetUsers(ctx.DB)
}

// resolveUsername picks the author name for sent messages.
func (ctx *CommandContext) resolveUsername() (string, error) {
	if ctx.Config.Username != "" {
		return ctx.Config.Username, nil
	}
	stored, err := db.GetConfig(ctx.DB, "username")
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}
	return os.Getenv("USER"), nil
}
