package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jmadera/tripbook/internal/domain"
)

// pgUniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// txdb extends db with transaction support. *pgxpool.Pool satisfies it
// directly; pgx.Tx satisfies it too (Begin opens a savepoint), so integration
// tests keep their rollback isolation even for the transactional paths.
type txdb interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RegistrationRepo defines the persistence operations for the client_trips
// join table.
type RegistrationRepo interface {
	// Register creates a registration for the (client, trip) pair with the
	// given YYYYMMDD-encoded registration date and no payment date.
	//
	// The capacity check and the insert run in one transaction holding a
	// row lock on the trip, so two concurrent calls racing for the last
	// slot cannot both commit. Returns domain.ErrTripNotFound if the trip
	// row is gone, domain.ErrTripFull if the trip is at capacity, and
	// domain.ErrAlreadyRegistered if the pair already has a registration.
	Register(ctx context.Context, clientID, tripID, registeredAt int) error

	// Cancel deletes the registration for the (client, trip) pair.
	// Returns domain.ErrNotRegistered if no row was deleted.
	Cancel(ctx context.Context, clientID, tripID int) error

	// CountByTrip returns the number of registrations for a trip.
	CountByTrip(ctx context.Context, tripID int) (int, error)
}

// pgRegistrationRepo is the Postgres implementation of RegistrationRepo.
type pgRegistrationRepo struct {
	db txdb
}

// NewRegistrationRepo constructs a RegistrationRepo backed by the provided
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewRegistrationRepo(db txdb) RegistrationRepo {
	return &pgRegistrationRepo{db: db}
}

func (r *pgRegistrationRepo) Register(ctx context.Context, clientID, tripID, registeredAt int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Register: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the trip row first. Concurrent registrations for the same trip
	// serialize here, so the count below cannot go stale between the check
	// and the insert.
	const lockQuery = `SELECT max_people FROM trips WHERE id = @trip_id FOR UPDATE`

	var maxPeople int
	err = tx.QueryRow(ctx, lockQuery, pgx.NamedArgs{"trip_id": tripID}).Scan(&maxPeople)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.RegistrationRepo.Register: %w", domain.ErrTripNotFound)
		}
		return fmt.Errorf("repo.RegistrationRepo.Register: lock trip: %w", err)
	}

	const countQuery = `SELECT COUNT(*) FROM client_trips WHERE trip_id = @trip_id`

	var count int
	if err := tx.QueryRow(ctx, countQuery, pgx.NamedArgs{"trip_id": tripID}).Scan(&count); err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Register: count: %w", err)
	}
	if count >= maxPeople {
		return fmt.Errorf("repo.RegistrationRepo.Register: %w", domain.ErrTripFull)
	}

	// Optimistic insert: the primary key on (client_id, trip_id) is the
	// single source of truth for duplicates. No pre-check — a concurrent
	// duplicate surfaces as a unique violation here.
	const insertQuery = `
		INSERT INTO client_trips (client_id, trip_id, registered_at)
		VALUES (@client_id, @trip_id, @registered_at)`

	args := pgx.NamedArgs{
		"client_id":     clientID,
		"trip_id":       tripID,
		"registered_at": registeredAt,
	}
	if _, err := tx.Exec(ctx, insertQuery, args); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("repo.RegistrationRepo.Register: %w", domain.ErrAlreadyRegistered)
		}
		return fmt.Errorf("repo.RegistrationRepo.Register: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Register: commit: %w", err)
	}
	return nil
}

func (r *pgRegistrationRepo) Cancel(ctx context.Context, clientID, tripID int) error {
	const q = `
		DELETE FROM client_trips
		WHERE client_id = @client_id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Cancel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RegistrationRepo.Cancel: %w", domain.ErrNotRegistered)
	}
	return nil
}

func (r *pgRegistrationRepo) CountByTrip(ctx context.Context, tripID int) (int, error) {
	const q = `SELECT COUNT(*) FROM client_trips WHERE trip_id = @trip_id`

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.RegistrationRepo.CountByTrip: %w", err)
	}
	return count, nil
}
