package store

import (
	"context"
	"database/sql"
	"errors"
)

type Problem struct {
	ID          int64
	Name        string
	Description string
}

func (s *Store) Problems(ctx context.Context) ([]Problem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description FROM problems ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		var p Problem
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

func (s *Store) ProblemByID(ctx context.Context, id int64) (Problem, error) {
	return s.scanProblem(s.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM problems WHERE id = ?
	`, id))
}

// LatestProblem returns the most recently created problem, shown on the
// front page.
func (s *Store) LatestProblem(ctx context.Context) (Problem, error) {
	return s.scanProblem(s.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM problems ORDER BY id DESC LIMIT 1
	`))
}

func (s *Store) CreateProblem(ctx context.Context, name, description string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO problems (name, description) VALUES (?, ?)
	`, name, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateProblem(ctx context.Context, id int64, name, description string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE problems SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	return err
}

func (s *Store) DeleteProblem(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM problems WHERE id = ?`, id)
	return err
}

func (s *Store) scanProblem(row *sql.Row) (Problem, error) {
	var p Problem
	err := row.Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Problem{}, ErrNotFound
	}
	return p, err
}
