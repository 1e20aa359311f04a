package store

import "context"

// LeaderboardEntry scores a user by the number of solutions they have
// submitted.
type LeaderboardEntry struct {
	User  User
	Score int64
}

func (s *Store) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.sid, u.admin, COUNT(s.id) AS score
		FROM users u
		LEFT JOIN solutions s ON s.user_id = u.id
		GROUP BY u.id
		ORDER BY score DESC, u.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.User.ID, &e.User.SID, &e.User.Admin, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
