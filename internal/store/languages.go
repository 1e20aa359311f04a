package store

import (
	"context"
	"database/sql"
	"errors"
)

type Language struct {
	ID   int64
	Name string
}

func (s *Store) Languages(ctx context.Context) ([]Language, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM languages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, rows.Err()
}

func (s *Store) LanguageByID(ctx context.Context, id int64) (Language, error) {
	var l Language
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM languages WHERE id = ?
	`, id).Scan(&l.ID, &l.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Language{}, ErrNotFound
	}
	return l, err
}

func (s *Store) CreateLanguage(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO languages (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateLanguage(ctx context.Context, id int64, name string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE languages SET name = ? WHERE id = ?`, name, id)
	return err
}

func (s *Store) DeleteLanguage(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM languages WHERE id = ?`, id)
	return err
}
