package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/mlahtinen/tutorloop/internal/repositories"
	"github.com/mlahtinen/tutorloop/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryEnsureIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewSessionRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	first, err := repo.Ensure(ctx, 1, "Math")
	require.NoError(t, err)
	require.Equal(t, "Math", first.Topic)
	require.Equal(t, int64(1), first.UserID)

	second, err := repo.Ensure(ctx, 1, "Math")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	sessions, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestSessionRepositorySeparatesUsersAndTopics(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewSessionRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	math, err := repo.Ensure(ctx, 1, "Math")
	require.NoError(t, err)
	history, err := repo.Ensure(ctx, 1, "History")
	require.NoError(t, err)
	require.NotEqual(t, math.ID, history.ID)

	bobMath, err := repo.Ensure(ctx, 2, "Math")
	require.NoError(t, err)
	require.NotEqual(t, math.ID, bobMath.ID)

	sessions, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "Math", sessions[0].Topic)
	require.Equal(t, "History", sessions[1].Topic)
}

func TestSessionRepositoryGetScopesToUser(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewSessionRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	session, err := repo.Ensure(ctx, 1, "Math")
	require.NoError(t, err)

	found, err := repo.Get(ctx, session.ID, 1)
	require.NoError(t, err)
	require.Equal(t, session.ID, found.ID)

	// Another user must not see the session.
	_, err = repo.Get(ctx, session.ID, 2)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
