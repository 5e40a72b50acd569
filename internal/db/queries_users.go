package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/adamavenir/mention/internal/types"
)

// DefaultUsers seeds an empty directory.
var DefaultUsers = []types.User{
	{ID: 1, Name: "Alice", LastName: "Smith"},
	{ID: 2, Name: "Bob", LastName: "Johnson"},
	{ID: 3, Name: "Charlie", LastName: "Brown"},
}

// GetUsers returns the directory in id order.
func GetUsers(db *sql.DB) ([]types.User, error) {
	rows, err := db.Query("SELECT id, name, last_name FROM mention_users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Name, &user.LastName); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a user by id, or nil if missing.
func GetUser(db *sql.DB, id int64) (*types.User, error) {
	row := db.QueryRow("SELECT id, name, last_name FROM mention_users WHERE id = ?", id)
	var user types.User
	if err := row.Scan(&user.ID, &user.Name, &user.LastName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AddUser appends a user to the directory and returns it with its id.
func AddUser(db *sql.DB, name, lastName string) (types.User, error) {
	name = strings.TrimSpace(name)
	lastName = strings.TrimSpace(lastName)
	if err := validateUserName(name, lastName); err != nil {
		return types.User{}, err
	}
	result, err := db.Exec(
		"INSERT INTO mention_users (name, last_name, created_at) VALUES (?, ?, ?)",
		name, lastName, time.Now().Unix(),
	)
	if err != nil {
		return types.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return types.User{}, err
	}
	return types.User{ID: id, Name: name, LastName: lastName}, nil
}

// RemoveUser deletes a user. It reports whether a row was removed.
func RemoveUser(db *sql.DB, id int64) (bool, error) {
	result, err := db.Exec("DELETE FROM mention_users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ImportUsers upserts users by id in one transaction. Users without an id
// are appended.
func ImportUsers(db *sql.DB, users []types.User) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	count := 0
	for _, user := range users {
		if err := validateUserName(user.Name, user.LastName); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		if user.ID > 0 {
			_, err = tx.Exec(`
				INSERT INTO mention_users (id, name, last_name, created_at) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, last_name = excluded.last_name
			`, user.ID, user.Name, user.LastName, now)
		} else {
			_, err = tx.Exec(
				"INSERT INTO mention_users (name, last_name, created_at) VALUES (?, ?, ?)",
				user.Name, user.LastName, now,
			)
		}
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("import %s: %w", user.FullName(), err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// SeedDefaultUsers fills an empty directory with DefaultUsers.
func SeedDefaultUsers(db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM mention_users").Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := ImportUsers(db, DefaultUsers); err != nil {
		return false, err
	}
	return true, nil
}

// validateUserName rejects names that could never form a two-word mention.
func validateUserName(name, lastName string) error {
	if name == "" || lastName == "" {
		return fmt.Errorf("user needs a first and last name")
	}
	if strings.ContainsAny(name, " \t") || strings.ContainsAny(lastName, " \t") {
		return fmt.Errorf("names must be single words: %q %q", name, lastName)
	}
	return nil
}
