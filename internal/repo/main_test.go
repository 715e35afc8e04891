package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/jmadera/tripbook/migrations"
	"github.com/jmadera/tripbook/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// No test DB configured — every test skips itself cleanly.
		os.Exit(m.Run())
	}

	// goose needs database/sql, not a pgx pool.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// newTestTx opens a transaction against the test database and rolls it back
// when the test finishes, giving free per-test isolation. Every repo under
// test accepts the transaction through its db interface.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// --- fixtures ---------------------------------------------------------------

// seedTrip inserts a trip with maxPeople capacity and links it to the named
// countries (creating them as needed). Returns the trip id.
func seedTrip(t *testing.T, tx pgx.Tx, name string, maxPeople int, countries ...string) int {
	t.Helper()
	ctx := context.Background()

	var tripID int
	err := tx.QueryRow(ctx, `
		INSERT INTO trips (name, description, date_from, date_to, max_people)
		VALUES ($1, 'fixture trip', '2025-07-01', '2025-07-14', $2)
		RETURNING id`, name, maxPeople,
	).Scan(&tripID)
	require.NoError(t, err, "insert trip")

	for _, country := range countries {
		var countryID int
		err := tx.QueryRow(ctx, `
			INSERT INTO countries (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, country,
		).Scan(&countryID)
		require.NoError(t, err, "upsert country")

		_, err = tx.Exec(ctx, `
			INSERT INTO country_trips (country_id, trip_id)
			VALUES ($1, $2)`, countryID, tripID)
		require.NoError(t, err, "link country to trip")
	}

	return tripID
}

// seedClient inserts a client row and returns its id.
func seedClient(t *testing.T, tx pgx.Tx, firstName string) int {
	t.Helper()

	var id int
	err := tx.QueryRow(context.Background(), `
		INSERT INTO clients (first_name, last_name, email, phone, national_id)
		VALUES ($1, 'Fixture', 'fixture@example.com', '+48123456789', '90010112345')
		RETURNING id`, firstName,
	).Scan(&id)
	require.NoError(t, err, "insert client")
	return id
}
