package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/repositories"
	"github.com/mlahtinen/tutorloop/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPreferenceRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	// Unsaved preferences resolve to the all-false defaults.
	preferences, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, &models.Preferences{UserID: 1}, preferences)

	saved := models.Preferences{
		UserID:             1,
		Visual:             true,
		ADHD:               false,
		DueDates:           true,
		OnboardingComplete: false,
	}
	require.NoError(t, repo.Upsert(ctx, saved))

	preferences, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, &saved, preferences)

	// Upsert replaces the previous values.
	saved.OnboardingComplete = true
	require.NoError(t, repo.Upsert(ctx, saved))
	preferences, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, preferences.OnboardingComplete)
}
