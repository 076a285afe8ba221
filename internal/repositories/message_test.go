package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/mlahtinen/tutorloop/internal/repositories"
	"github.com/mlahtinen/tutorloop/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	sessions := repositories.NewSessionRepository(db, logger)
	messages := repositories.NewMessageRepository(db, logger)
	ctx := context.Background()

	session, err := sessions.Ensure(ctx, 1, "Math")
	require.NoError(t, err)

	questionID, err := messages.Insert(ctx, 1, session.ID, "2+2?", true)
	require.NoError(t, err)
	answerID, err := messages.Insert(ctx, 1, session.ID, "What do you think it is?", false)
	require.NoError(t, err)
	require.Greater(t, answerID, questionID)

	listed, err := messages.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	require.Equal(t, "2+2?", listed[0].Text)
	require.True(t, listed[0].FromUser)
	require.Equal(t, "What do you think it is?", listed[1].Text)
	require.False(t, listed[1].FromUser)

	other, err := sessions.Ensure(ctx, 1, "History")
	require.NoError(t, err)
	empty, err := messages.ListBySession(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, empty)
}
