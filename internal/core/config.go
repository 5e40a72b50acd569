package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configDirName  = "mention"
	configFileName = "config.toml"
	dbFileName     = "mention.db"

	envConfigPath = "MENTION_CONFIG"
	envDBPath     = "MENTION_DB"
)

// Config holds user settings for the mention CLI.
type Config struct {
	DBPath          string   `toml:"db_path" json:"db_path"`
	UsersFile       string   `toml:"users_file" json:"users_file,omitempty"`
	Username        string   `toml:"username" json:"username,omitempty"`
	SuggestionLimit int      `toml:"suggestion_limit" json:"suggestion_limit"`
	UI              UIConfig `toml:"ui" json:"ui"`
}

// UIConfig controls the interactive input.
type UIConfig struct {
	ShowPreview bool `toml:"show_preview" json:"show_preview"`
	ShowDebug   bool `toml:"show_debug" json:"show_debug"`
}

// DefaultConfig returns the built-in settings rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		DBPath:          filepath.Join(dir, dbFileName),
		SuggestionLimit: DefaultSuggestionLimit,
		UI: UIConfig{
			ShowPreview: true,
		},
	}
}

// ConfigPath returns the config file location, honouring MENTION_CONFIG.
func ConfigPath() (string, error) {
	if path := os.Getenv(envConfigPath); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", configDirName, configFileName), nil
}

// LoadConfig reads the config at path. A missing file yields defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig(filepath.Dir(path))
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if dbPath := os.Getenv(envDBPath); dbPath != "" {
		config.DBPath = dbPath
	}
	if config.SuggestionLimit < 0 {
		config.SuggestionLimit = 0
	}
	config.DBPath = expandHome(config.DBPath)
	config.UsersFile = expandHome(config.UsersFile)
	return config, nil
}

// WriteConfig writes config to path as TOML.
func WriteConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(file).Encode(config); err != nil {
		_ = file.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return file.Close()
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
