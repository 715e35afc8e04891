// Package service contains the business logic for the trip registration
// service. Services enforce the workflow rules — existence checks, error
// classification, aggregation of flat rows into nested views — and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/jmadera/tripbook/internal/domain"
	"github.com/jmadera/tripbook/internal/repo"
)

// TripService implements the trip-listing operations.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// List returns all trips with their countries.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]*domain.Trip, error) {
	rows, err := s.trips.ListRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return domain.BuildTrips(rows), nil
}

// GetByID returns a single trip with its countries.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id int) (*domain.Trip, error) {
	rows, err := s.trips.GetRows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrTripNotFound)
	}
	return domain.BuildTrips(rows)[0], nil
}
