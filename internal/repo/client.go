package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmadera/tripbook/internal/domain"
)

// ClientRepo defines the persistence operations for Clients and the
// client-scoped trip listing.
type ClientRepo interface {
	// Create inserts a new client and returns the generated id.
	Create(ctx context.Context, client domain.Client) (int, error)

	// Exists reports whether a client with the given id has a row.
	Exists(ctx context.Context, id int) (bool, error)

	// ListTripRows returns the flat join rows for every trip the client is
	// registered for, ordered by trip id then country id. A client with no
	// registrations yields an empty slice.
	ListTripRows(ctx context.Context, clientID int) ([]domain.ClientTripRow, error)
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (int, error) {
	const q = `
		INSERT INTO clients (first_name, last_name, email, phone, national_id)
		VALUES (@first_name, @last_name, @email, @phone, @national_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"first_name":  client.FirstName,
		"last_name":   client.LastName,
		"email":       client.Email,
		"phone":       client.Phone,
		"national_id": client.NationalID,
	}

	var id int
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return id, nil
}

func (r *pgClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM clients WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ClientRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgClientRepo) ListTripRows(ctx context.Context, clientID int) ([]domain.ClientTripRow, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
		       c.id, c.name,
		       reg.registered_at, reg.payment_date
		FROM trips t
		JOIN country_trips ct ON ct.trip_id = t.id
		JOIN countries c ON c.id = ct.country_id
		JOIN client_trips reg ON reg.trip_id = t.id
		WHERE reg.client_id = @client_id
		ORDER BY t.id, c.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("repo.ClientRepo.ListTripRows: %w", err)
	}
	defer rows.Close()

	result := []domain.ClientTripRow{}
	for rows.Next() {
		var row domain.ClientTripRow
		err := rows.Scan(
			&row.TripID, &row.TripName, &row.Description,
			&row.StartDate, &row.EndDate, &row.MaxPeople,
			&row.CountryID, &row.CountryName,
			&row.RegisteredAt, &row.PaymentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("repo.ClientRepo.ListTripRows: scan: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ClientRepo.ListTripRows: rows: %w", err)
	}
	return result, nil
}
