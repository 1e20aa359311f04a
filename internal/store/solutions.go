package store

import "context"

type Solution struct {
	ID         int64
	ProblemID  int64
	UserID     int64
	LanguageID int64
	Code       string
}

// SolutionSummary joins a solution with the problem and language names
// for profile pages.
type SolutionSummary struct {
	ID       int64
	Problem  string
	Language string
}

func (s *Store) CreateSolution(ctx context.Context, problemID, userID, languageID int64, code string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO solutions (problem_id, user_id, language_id, code)
		VALUES (?, ?, ?, ?)
	`, problemID, userID, languageID, code)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) SolutionsByUser(ctx context.Context, userID int64) ([]SolutionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, p.name, l.name
		FROM solutions s
		INNER JOIN problems p ON p.id = s.problem_id
		INNER JOIN languages l ON l.id = s.language_id
		WHERE s.user_id = ?
		ORDER BY s.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var solutions []SolutionSummary
	for rows.Next() {
		var sol SolutionSummary
		if err := rows.Scan(&sol.ID, &sol.Problem, &sol.Language); err != nil {
			return nil, err
		}
		solutions = append(solutions, sol)
	}
	return solutions, rows.Err()
}
