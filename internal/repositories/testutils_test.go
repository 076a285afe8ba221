package repositories_test

import (
	"context"
	"io"
	"testing"

	_ "embed"

	"github.com/mlahtinen/tutorloop/internal/sqlite"
	"github.com/mlahtinen/tutorloop/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database with test fixtures applied.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	db, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)

	_, err = db.ReadWrite.Exec(testFixtures)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}
