package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/bestemiy/inkstudio/database/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The in-memory database vanishes with its connection; keep one open.
	db.SetMaxOpenConns(1)

	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}
