// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
)

// Open returns a fresh migrated database in t's temp dir and its queries.
// The database is closed when the test ends.
func Open(t testing.TB) (*sqlx.DB, *db.Queries) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = db.MigrateUp(ctx, conn)
	require.NoError(t, err)

	q, err := db.LoadQueries(conn)
	require.NoError(t, err)
	return conn, q
}
