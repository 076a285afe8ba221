package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mlahtinen/tutorloop/internal/repositories"
	"github.com/mlahtinen/tutorloop/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "db",
	Title: "Database operations",
}

func init() {
	Seed.Flags().String("db", "./tutorloop.sqlite", "path to the SQLite database file")
}

// Seed populates the database with a demo user and a sample tutoring session,
// which is handy for poking at the API without registering through it.
var Seed = &cobra.Command{ //nolint:exhaustruct // rest are defaults
	Use:     "seed",
	GroupID: "db",
	Short:   "Seed demo data",
	Long:    `Creates a demo user with a sample chat session and messages`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		dbPath, err := cmd.Flags().GetString("db")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid db flag: %v\n", err)
			return
		}
		db, err := sqlite.NewDatabase(ctx, dbPath, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "database error: %v\n", err)
			return
		}
		defer func() {
			_ = db.Close()
		}()

		users := repositories.NewUserRepository(db, logger)
		sessions := repositories.NewSessionRepository(db, logger)
		messages := repositories.NewMessageRepository(db, logger)

		userID, err := users.Create(ctx, "demo", "demo@example.com", "demo password")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "create user error: %v\n", err)
			return
		}

		session, err := sessions.Ensure(ctx, userID, "Photosynthesis")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "create session error: %v\n", err)
			return
		}

		demoMessages := []struct {
			text     string
			fromUser bool
		}{
			{"Why are leaves green?", true},
			{"Leaves are green because chlorophyll absorbs red and blue light and reflects green.", false},
		}
		for _, message := range demoMessages {
			if _, err = messages.Insert(ctx, userID, session.ID, message.text, message.fromUser); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "insert message error: %v\n", err)
				return
			}
		}

		fmt.Printf("Seeded demo user %d with session %d in %s\n", userID, session.ID, dbPath)
	},
}
