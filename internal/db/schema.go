package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS identities (
    uid            TEXT PRIMARY KEY,
    email          TEXT NOT NULL,
    password_hash  TEXT NOT NULL,
    email_verified INTEGER NOT NULL DEFAULT 0,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_email ON identities(email);

CREATE TABLE IF NOT EXISTS accounts (
    id             TEXT PRIMARY KEY,
    uid            TEXT NOT NULL REFERENCES identities(uid),
    username       TEXT NOT NULL,
    email          TEXT NOT NULL,
    email_verified INTEGER NOT NULL DEFAULT 0,
    created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_uid ON accounts(uid);

CREATE TABLE IF NOT EXISTS lost_items (
    id          TEXT PRIMARY KEY,
    owner_id    TEXT NOT NULL,
    owner_email TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'lost',
    fields      TEXT NOT NULL DEFAULT '{}',
    photo       BLOB,
    photo_mime  TEXT,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lost_items_owner ON lost_items(owner_id);

CREATE TABLE IF NOT EXISTS auth_tokens (
    token      TEXT PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('verify', 'reset')),
    uid        TEXT NOT NULL REFERENCES identities(uid),
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{}

// Migrate creates the schema and runs any pending migrations. Safe to call
// on every startup.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
