package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetch/potw/internal/db"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "potw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return New(database.DB)
}

func TestUserRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CreateUser(ctx, "gbowser")
	require.NoError(t, err)

	byID, err := st.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "gbowser", byID.SID)
	assert.False(t, byID.Admin)

	bySID, err := st.UserBySID(ctx, "gbowser")
	require.NoError(t, err)
	assert.Equal(t, id, bySID.ID)
}

func TestUserLookupMissesReportNotFound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.UserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.UserBySID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.UserIDByExternalID(ctx, "ext-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExternalIdentityMapping(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, "gbowser")
	require.NoError(t, err)
	require.NoError(t, st.CreateExternalIdentity(ctx, "ext-1", uid))

	got, err := st.UserIDByExternalID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	// The external id is the primary key, so a second mapping for the
	// same subject must fail with a recognizable violation.
	err = st.CreateExternalIdentity(ctx, "ext-1", uid)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(ErrNotFound))
}

func TestProblemCRUD(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.CreateProblem(ctx, "FizzBuzz", "Print the numbers.")
	require.NoError(t, err)
	second, err := st.CreateProblem(ctx, "Anagrams", "Group the words.")
	require.NoError(t, err)

	latest, err := st.LatestProblem(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)

	problems, err := st.Problems(ctx)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, first, problems[0].ID)

	require.NoError(t, st.UpdateProblem(ctx, first, "FizzBuzz II", "Print more numbers."))
	updated, err := st.ProblemByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "FizzBuzz II", updated.Name)

	require.NoError(t, st.DeleteProblem(ctx, first))
	_, err = st.ProblemByID(ctx, first)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestProblemEmptyTable(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LatestProblem(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLanguagesSortedByName(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CreateLanguage(ctx, "Rust")
	require.NoError(t, err)
	_, err = st.CreateLanguage(ctx, "Go")
	require.NoError(t, err)
	_, err = st.CreateLanguage(ctx, "Python")
	require.NoError(t, err)

	languages, err := st.Languages(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 3)
	assert.Equal(t, "Go", languages[0].Name)
	assert.Equal(t, "Python", languages[1].Name)
	assert.Equal(t, "Rust", languages[2].Name)
}

func TestLanguageUpdateAndDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.CreateLanguage(ctx, "Pyton")
	require.NoError(t, err)

	require.NoError(t, st.UpdateLanguage(ctx, id, "Python"))
	l, err := st.LanguageByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Python", l.Name)

	require.NoError(t, st.DeleteLanguage(ctx, id))
	_, err = st.LanguageByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSolutionsByUserJoinsNames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, "gbowser")
	require.NoError(t, err)
	pid, err := st.CreateProblem(ctx, "FizzBuzz", "Print the numbers.")
	require.NoError(t, err)
	lid, err := st.CreateLanguage(ctx, "Go")
	require.NoError(t, err)

	_, err = st.CreateSolution(ctx, pid, uid, lid, "package main")
	require.NoError(t, err)

	solutions, err := st.SolutionsByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, "FizzBuzz", solutions[0].Problem)
	assert.Equal(t, "Go", solutions[0].Language)

	other, err := st.SolutionsByUser(ctx, uid+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLeaderboardOrdering(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	alice, err := st.CreateUser(ctx, "alice")
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, "bob")
	require.NoError(t, err)
	carol, err := st.CreateUser(ctx, "carol")
	require.NoError(t, err)

	pid, err := st.CreateProblem(ctx, "FizzBuzz", "Print the numbers.")
	require.NoError(t, err)
	lid, err := st.CreateLanguage(ctx, "Go")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = st.CreateSolution(ctx, pid, bob, lid, "fn")
		require.NoError(t, err)
	}
	_, err = st.CreateSolution(ctx, pid, carol, lid, "fn")
	require.NoError(t, err)

	entries, err := st.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, bob, entries[0].User.ID)
	assert.EqualValues(t, 3, entries[0].Score)
	assert.Equal(t, carol, entries[1].User.ID)
	assert.EqualValues(t, 1, entries[1].Score)

	// Users without solutions still appear, scored zero.
	assert.Equal(t, alice, entries[2].User.ID)
	assert.EqualValues(t, 0, entries[2].Score)
}

func TestTransactRollsBackOnError(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("abort")
	err := st.Transact(ctx, func(tx *Store) error {
		if _, err := tx.CreateUser(ctx, "ghost"); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	users, err := st.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestTransactCommits(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Transact(ctx, func(tx *Store) error {
		_, err := tx.CreateUser(ctx, "gbowser")
		return err
	})
	require.NoError(t, err)

	users, err := st.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
