package db

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adamavenir/mention/internal/types"
)

// ReadUsersFile loads a JSON array of users:
//
//	[{"id": 1, "name": "Alice", "lastName": "Smith"}]
func ReadUsersFile(path string) ([]types.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []types.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}
	seen := make(map[int64]struct{}, len(users))
	for i, user := range users {
		if err := validateUserName(user.Name, user.LastName); err != nil {
			return nil, fmt.Errorf("users file %s entry %d: %w", path, i, err)
		}
		if user.ID <= 0 {
			return nil, fmt.Errorf("users file %s entry %d: id must be positive", path, i)
		}
		if _, ok := seen[user.ID]; ok {
			return nil, fmt.Errorf("users file %s: duplicate id %d", path, user.ID)
		}
		seen[user.ID] = struct{}{}
	}
	return users, nil
}

// WriteUsersFile writes users as an indented JSON array.
func WriteUsersFile(path string, users []types.User) error {
	if users == nil {
		users = []types.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
