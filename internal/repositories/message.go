package repositories

import (
	"context"
	"log/slog"

	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
)

type MessageRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewMessageRepository(db *sqlite.Database, logger *slog.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger.With("source", "MessageRepository"),
	}
}

// Insert appends a message to the session and returns its ID. fromUser marks
// whether the user or the tutor authored it.
func (r *MessageRepository) Insert(
	ctx context.Context,
	userID int64,
	sessionID int64,
	text string,
	fromUser bool,
) (int64, error) {
	stmt := `INSERT INTO messages (user_id, session_id, message, from_user) VALUES (?, ?, ?, ?)`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, userID, sessionID, text, fromUser)
	if err != nil {
		return 0, errors.Wrap(err, "insert message", slog.Int64("session_id", sessionID))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// ListBySession returns the session's messages in insertion order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.Message, error) {
	var messages []models.Message
	stmt := `SELECT id, user_id, session_id, message, from_user, created
	FROM messages
	WHERE session_id = ?
	ORDER BY id ASC`
	if err := r.db.ReadOnly.SelectContext(ctx, &messages, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "list messages", slog.Int64("session_id", sessionID))
	}
	return messages, nil
}
