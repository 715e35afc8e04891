package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadera/tripbook/internal/domain"
	"github.com/jmadera/tripbook/internal/repo"
)

func TestClientRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewClientRepo(tx)

	id, err := r.Create(context.Background(), domain.Client{
		FirstName:  "Ann",
		LastName:   "Lee",
		Email:      "a@b.com",
		Phone:      "+12345678901",
		NationalID: "12345678901",
	})

	require.NoError(t, err)
	assert.Positive(t, id, "id should be DB-generated and positive")
}

func TestClientRepo_Exists(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewClientRepo(tx)
	ctx := context.Background()

	id := seedClient(t, tx, "Ann")

	exists, err := r.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.Exists(ctx, 999999999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClientRepo_ListTripRows_NoRegistrations(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewClientRepo(tx)

	id := seedClient(t, tx, "Ann")

	rows, err := r.ListTripRows(context.Background(), id)

	require.NoError(t, err)
	assert.Empty(t, rows, "a client with no registrations yields an empty slice")
}

func TestClientRepo_ListTripRows_CarriesRegistrationColumns(t *testing.T) {
	tx := newTestTx(t)
	clients := repo.NewClientRepo(tx)
	registrations := repo.NewRegistrationRepo(tx)
	ctx := context.Background()

	clientID := seedClient(t, tx, "Ann")
	tripID := seedTrip(t, tx, "Danube Cruise", 20, "Hungary", "Austria")
	otherTrip := seedTrip(t, tx, "Sahara Trek", 5, "Morocco")

	require.NoError(t, registrations.Register(ctx, clientID, tripID, 20240501))

	rows, err := clients.ListTripRows(ctx, clientID)

	require.NoError(t, err)
	require.Len(t, rows, 2, "one row per country of the registered trip")
	for _, row := range rows {
		assert.Equal(t, tripID, row.TripID)
		assert.NotEqual(t, otherTrip, row.TripID, "unregistered trips must not appear")
		assert.Equal(t, 20240501, row.RegisteredAt)
		assert.Nil(t, row.PaymentDate, "payment date starts out NULL")
	}
}
