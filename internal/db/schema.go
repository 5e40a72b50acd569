package db

import (
	"database/sql"
)

const schemaSQL = `
-- Mention directory
CREATE TABLE IF NOT EXISTS mention_users (
  id INTEGER PRIMARY KEY,              -- directory order
  name TEXT NOT NULL,                  -- first name
  last_name TEXT NOT NULL,
  created_at INTEGER NOT NULL,         -- unix timestamp
  UNIQUE (name, last_name)
);

-- Submitted input buffers
CREATE TABLE IF NOT EXISTS mention_messages (
  guid TEXT PRIMARY KEY,               -- e.g., "msg-a1b2c3d4"
  ts INTEGER NOT NULL,                 -- unix timestamp
  from_user TEXT NOT NULL DEFAULT '',
  body TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mention_messages_ts ON mention_messages(ts);

-- Mention spans recognised at submit time
CREATE TABLE IF NOT EXISTS mention_message_mentions (
  message_guid TEXT NOT NULL,
  user_id INTEGER NOT NULL,
  start_offset INTEGER NOT NULL,       -- rune offset, inclusive
  end_offset INTEGER NOT NULL,         -- rune offset, exclusive
  text TEXT NOT NULL,
  PRIMARY KEY (message_guid, start_offset),
  FOREIGN KEY (message_guid) REFERENCES mention_messages(guid) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_mention_message_mentions_user ON mention_message_mentions(user_id);

-- Key/value settings
CREATE TABLE IF NOT EXISTS mention_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitSchema initializes the mention schema.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SchemaExists reports whether the mention schema is present.
func SchemaExists(db *sql.DB) (bool, error) {
	row := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='mention_users'
	`)
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
