// Package repo contains all database access logic for the trip registration
// service. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jmadera/tripbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// tripCountryQuery is the flat join backing both trip listings. One row per
// (trip, country) pair; the same trip id recurs once per country. The fixed
// ORDER BY keeps the cursor deterministic so the fold's first-seen ordering
// is stable across runs.
const tripCountryQuery = `
	SELECT t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
	       c.id, c.name
	FROM trips t
	JOIN country_trips ct ON ct.trip_id = t.id
	JOIN countries c ON c.id = ct.country_id`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Exists reports whether a trip with the given id has a row.
	Exists(ctx context.Context, id int) (bool, error)

	// ListRows returns the flat trip-to-country join for all trips,
	// ordered by trip id then country id.
	ListRows(ctx context.Context) ([]domain.TripCountryRow, error)

	// GetRows returns the flat join rows for a single trip.
	// An unknown id yields an empty slice, not an error — whether that is
	// a not-found condition is the service layer's call.
	GetRows(ctx context.Context, id int) ([]domain.TripCountryRow, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Exists(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM trips WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.TripRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgTripRepo) ListRows(ctx context.Context) ([]domain.TripCountryRow, error) {
	const q = tripCountryQuery + `
	ORDER BY t.id, c.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListRows: %w", err)
	}
	defer rows.Close()

	result, err := collectTripCountryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListRows: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetRows(ctx context.Context, id int) ([]domain.TripCountryRow, error) {
	const q = tripCountryQuery + `
	WHERE t.id = @id
	ORDER BY c.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetRows: %w", err)
	}
	defer rows.Close()

	result, err := collectTripCountryRows(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetRows: %w", err)
	}
	return result, nil
}

// collectTripCountryRows drains a cursor produced by tripCountryQuery.
func collectTripCountryRows(rows pgx.Rows) ([]domain.TripCountryRow, error) {
	result := []domain.TripCountryRow{}
	for rows.Next() {
		row, err := scanTripCountryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return result, nil
}

// scanTripCountryRow maps a single join row into a domain.TripCountryRow.
func scanTripCountryRow(s scanner) (domain.TripCountryRow, error) {
	var row domain.TripCountryRow
	err := s.Scan(
		&row.TripID, &row.TripName, &row.Description,
		&row.StartDate, &row.EndDate, &row.MaxPeople,
		&row.CountryID, &row.CountryName,
	)
	if err != nil {
		return domain.TripCountryRow{}, err
	}
	return row, nil
}
