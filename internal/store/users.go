package store

import (
	"context"
	"database/sql"
	"errors"
)

// User is an internal identity record. The id is immutable; sid is the
// public handle shown on pages and in URLs.
type User struct {
	ID    int64
	SID   string
	Admin bool
}

func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, sid, admin FROM users WHERE id = ?
	`, id))
}

func (s *Store) UserBySID(ctx context.Context, sid string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, sid, admin FROM users WHERE sid = ? LIMIT 1
	`, sid))
}

func (s *Store) Users(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sid, admin FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.SID, &u.Admin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, sid string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (sid, admin) VALUES (?, 0)
	`, sid)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UserIDByExternalID maps a federated subject id to the internal user id.
func (s *Store) UserIDByExternalID(ctx context.Context, gid string) (int64, error) {
	var uid int64
	err := s.db.QueryRowContext(ctx, `
		SELECT uid FROM oauth_identities WHERE gid = ?
	`, gid).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return uid, err
}

func (s *Store) CreateExternalIdentity(ctx context.Context, gid string, uid int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO oauth_identities (gid, uid) VALUES (?, ?)
	`, gid, uid)
	return err
}

func (s *Store) scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.SID, &u.Admin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}
