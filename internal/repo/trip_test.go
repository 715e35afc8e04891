package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadera/tripbook/internal/domain"
	"github.com/jmadera/tripbook/internal/repo"
)

func TestTripRepo_Exists(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	tripID := seedTrip(t, tx, "Baltic Circle", 10, "Poland")

	exists, err := r.Exists(ctx, tripID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTripRepo_Exists_UnknownID(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	exists, err := r.Exists(context.Background(), 999999999)

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTripRepo_GetRows_OneRowPerCountry(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	tripID := seedTrip(t, tx, "Alpine Loop", 8, "Austria", "Switzerland", "Italy")

	rows, err := r.GetRows(ctx, tripID)

	require.NoError(t, err)
	require.Len(t, rows, 3, "expected one row per linked country")
	for _, row := range rows {
		assert.Equal(t, tripID, row.TripID)
		assert.Equal(t, "Alpine Loop", row.TripName)
		assert.Equal(t, 8, row.MaxPeople)
	}
}

func TestTripRepo_GetRows_UnknownID(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	rows, err := r.GetRows(context.Background(), 999999999)

	require.NoError(t, err)
	assert.Empty(t, rows, "unknown trip yields an empty slice, not an error")
}

func TestTripRepo_ListRows_OrderedByTripThenCountry(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	first := seedTrip(t, tx, "Nordic Lights", 6, "Norway", "Sweden")
	second := seedTrip(t, tx, "Iberian Coast", 12, "Spain")

	rows, err := r.ListRows(ctx)
	require.NoError(t, err)

	// The shared test DB may hold other rows; check only the seeded trips,
	// and that the cursor is globally ordered.
	var seen []domain.TripCountryRow
	for _, row := range rows {
		if row.TripID == first || row.TripID == second {
			seen = append(seen, row)
		}
	}
	require.Len(t, seen, 3)
	assert.Equal(t, first, seen[0].TripID)
	assert.Equal(t, first, seen[1].TripID)
	assert.Less(t, seen[0].CountryID, seen[1].CountryID, "countries ordered within a trip")
	assert.Equal(t, second, seen[2].TripID)
}
