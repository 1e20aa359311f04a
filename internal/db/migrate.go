package db

import (
	"context"
	"database/sql"
)

const migration = `
CREATE TABLE IF NOT EXISTS users (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    sid   TEXT NOT NULL,
    admin INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS oauth_identities (
    gid TEXT PRIMARY KEY,
    uid INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS problems (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS languages (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS solutions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    problem_id  INTEGER NOT NULL REFERENCES problems(id),
    user_id     INTEGER NOT NULL REFERENCES users(id),
    language_id INTEGER NOT NULL REFERENCES languages(id),
    code        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS solutions_user_id_idx ON solutions (user_id);
CREATE INDEX IF NOT EXISTS solutions_problem_id_idx ON solutions (problem_id);
`

// RunMigration creates the schema. The oauth_identities primary key on
// gid is what the provisioning transaction's retry-on-conflict relies on.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
