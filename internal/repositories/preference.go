package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
)

type PreferenceRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewPreferenceRepository(db *sqlite.Database, logger *slog.Logger) *PreferenceRepository {
	return &PreferenceRepository{
		db:     db,
		logger: logger.With("source", "PreferenceRepository"),
	}
}

// Get returns the user's preferences, or the all-false defaults when the user
// has not saved any yet.
func (r *PreferenceRepository) Get(ctx context.Context, userID int64) (*models.Preferences, error) {
	var preferences models.Preferences
	stmt := `SELECT user_id, visual, adhd, due_dates, onboarding_complete FROM preferences WHERE user_id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &preferences, stmt, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Preferences{UserID: userID}, nil //nolint:exhaustruct // defaults are the zero values
		}
		return nil, errors.Wrap(err, "read preferences", slog.Int64("user_id", userID))
	}
	return &preferences, nil
}

// Upsert saves the preferences, replacing any previous values.
func (r *PreferenceRepository) Upsert(ctx context.Context, preferences models.Preferences) error {
	stmt := `INSERT INTO preferences (user_id, visual, adhd, due_dates, onboarding_complete)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (user_id) DO UPDATE SET
		visual = excluded.visual,
		adhd = excluded.adhd,
		due_dates = excluded.due_dates,
		onboarding_complete = excluded.onboarding_complete`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt,
		preferences.UserID,
		preferences.Visual,
		preferences.ADHD,
		preferences.DueDates,
		preferences.OnboardingComplete,
	); err != nil {
		return errors.Wrap(err, "upsert preferences", slog.Int64("user_id", preferences.UserID))
	}
	return nil
}
