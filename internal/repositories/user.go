package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/models"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.NewSentinel("username already in use")
	ErrDuplicateEmail     = errors.NewSentinel("email linked to an existing account")
	ErrInvalidCredentials = errors.NewSentinel("invalid credentials")
)

type UserRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewUserRepository(db *sqlite.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("source", "UserRepository"),
	}
}

// Create registers a new user with a bcrypt-hashed password and returns the
// new user ID. Duplicate usernames and emails map to sentinel errors.
func (r *UserRepository) Create(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.Wrap(err, "hash password")
	}

	stmt := `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, username, email, hash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "users.email") {
				return 0, ErrDuplicateEmail
			}
			return 0, ErrDuplicateUsername
		}
		return 0, errors.Wrap(err, "insert user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// Authenticate verifies the password for the user matching the login, which
// can be either a username or an email. Unknown logins and wrong passwords
// both map to ErrInvalidCredentials so the two cases are indistinguishable to
// a caller probing for accounts.
func (r *UserRepository) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, username, email, password_hash, created FROM users WHERE username = ? OR email = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &user, stmt, login, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "read user")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, username, email, password_hash, created FROM users WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &user, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "read user")
	}
	return &user, nil
}

// Exists reports whether a user with the given ID exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`
	if err := r.db.ReadOnly.GetContext(ctx, &exists, stmt, id); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return exists, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	stmt := `DELETE FROM users WHERE id = ?`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, id); err != nil {
		return errors.Wrap(err, "delete user")
	}
	return nil
}
