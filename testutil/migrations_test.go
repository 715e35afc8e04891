package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadera/tripbook/migrations"
	"github.com/jmadera/tripbook/testutil"
)

// TestMigrations is an integration test that verifies the full migration
// round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert every expected table exists.
//  3. Roll back all migrations (goose reset).
//  4. Assert every table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may have already applied migrations against
	// this shared test DB. Reset to version 0 first so this test is
	// self-contained and order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	tables := []string{"clients", "trips", "countries", "country_trips", "client_trips"}
	for _, table := range tables {
		assert.True(t, tableExists(t, db, table), "table %q should exist after goose up", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down")

	for _, table := range tables {
		assert.False(t, tableExists(t, db, table), "table %q should not exist after goose down", table)
	}

	// Leave the schema applied for any packages that run after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "re-apply migrations")
}

// tableExists reports whether a table is present in the public schema.
func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, name,
	).Scan(&exists)
	require.NoError(t, err, "query information_schema")
	return exists
}
