package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
)

type SessionRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewSessionRepository(db *sqlite.Database, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger.With("source", "SessionRepository"),
	}
}

// Ensure returns the chat session for the (user, topic) pair, creating it if
// it does not exist yet. The UNIQUE (user_id, topic) constraint makes this
// idempotent: calling it twice never creates a duplicate row.
func (r *SessionRepository) Ensure(ctx context.Context, userID int64, topic string) (*models.Session, error) {
	stmt := `INSERT INTO chat_sessions (user_id, topic) VALUES (?, ?) ON CONFLICT (user_id, topic) DO NOTHING`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, userID, topic); err != nil {
		return nil, errors.Wrap(err, "insert chat session")
	}

	var session models.Session
	stmt = `SELECT id, user_id, topic, created FROM chat_sessions WHERE user_id = ? AND topic = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &session, stmt, userID, topic); err != nil {
		return nil, errors.Wrap(err, "read chat session", slog.Int64("user_id", userID))
	}
	return &session, nil
}

// Get returns the session with the given ID scoped to the user.
func (r *SessionRepository) Get(ctx context.Context, id, userID int64) (*models.Session, error) {
	var session models.Session
	stmt := `SELECT id, user_id, topic, created FROM chat_sessions WHERE id = ? AND user_id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &session, stmt, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "read chat session")
	}
	return &session, nil
}

// ListByUser returns the user's sessions in creation order.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]models.Session, error) {
	var sessions []models.Session
	stmt := `SELECT id, user_id, topic, created FROM chat_sessions WHERE user_id = ? ORDER BY id ASC`
	if err := r.db.ReadOnly.SelectContext(ctx, &sessions, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "list chat sessions")
	}
	return sessions, nil
}
