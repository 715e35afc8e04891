package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmadera/tripbook/internal/domain"
	"github.com/jmadera/tripbook/internal/metrics"
	"github.com/jmadera/tripbook/internal/repo"
)

// ClientService implements client creation and the registration and
// cancellation workflows. It holds the trips repo as well because both
// workflows verify the trip exists before touching the join table.
type ClientService struct {
	clients       repo.ClientRepo
	trips         repo.TripRepo
	registrations repo.RegistrationRepo
	recorder      metrics.Recorder
}

// NewClientService constructs a ClientService backed by the provided repos.
// Pass metrics.Nop{} as the recorder when metric output is irrelevant.
func NewClientService(clients repo.ClientRepo, trips repo.TripRepo, registrations repo.RegistrationRepo, recorder metrics.Recorder) *ClientService {
	return &ClientService{
		clients:       clients,
		trips:         trips,
		registrations: registrations,
		recorder:      recorder,
	}
}

// Create persists a new client and returns the generated id.
// Inputs arrive already validated by the edge; nothing is checked here.
func (s *ClientService) Create(ctx context.Context, client domain.Client) (int, error) {
	id, err := s.clients.Create(ctx, client)
	if err != nil {
		return 0, fmt.Errorf("service.ClientService.Create: %w", err)
	}
	s.recorder.ClientCreated()
	return id, nil
}

// ListTrips returns the client's registered trips with their countries and
// registration dates. A client with no registrations yields an empty list,
// not an error. Returns domain.ErrClientNotFound for an unknown client.
func (s *ClientService) ListTrips(ctx context.Context, clientID int) ([]*domain.ClientTrip, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		return nil, fmt.Errorf("service.ClientService.ListTrips: %w", err)
	}

	rows, err := s.clients.ListTripRows(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.ClientService.ListTrips: %w", err)
	}

	views, err := domain.BuildClientTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("service.ClientService.ListTrips: %w", err)
	}
	return views, nil
}

// Register registers the client for the trip and returns the client's
// refreshed trip list.
//
// Checks run in a fixed order — client existence, trip existence, then
// capacity inside the registration transaction — so a request naming two bad
// ids gets a deterministic error rather than an arbitrary one.
func (s *ClientService) Register(ctx context.Context, clientID, tripID int) ([]*domain.ClientTrip, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		s.recorder.RegistrationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Register: %w", err)
	}
	if err := s.requireTrip(ctx, tripID); err != nil {
		s.recorder.RegistrationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Register: %w", err)
	}

	registeredAt := domain.EncodeDate(time.Now().UTC())
	if err := s.registrations.Register(ctx, clientID, tripID, registeredAt); err != nil {
		s.recorder.RegistrationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Register: %w", err)
	}
	s.recorder.RegistrationSucceeded()

	return s.ListTrips(ctx, clientID)
}

// Cancel removes the client's registration for the trip and returns the
// client's refreshed trip list. Returns domain.ErrNotRegistered when the
// pair names valid ids with no registration between them.
func (s *ClientService) Cancel(ctx context.Context, clientID, tripID int) ([]*domain.ClientTrip, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		s.recorder.CancellationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Cancel: %w", err)
	}
	if err := s.requireTrip(ctx, tripID); err != nil {
		s.recorder.CancellationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Cancel: %w", err)
	}

	if err := s.registrations.Cancel(ctx, clientID, tripID); err != nil {
		s.recorder.CancellationFailed(failureReason(err))
		return nil, fmt.Errorf("service.ClientService.Cancel: %w", err)
	}
	s.recorder.CancellationSucceeded()

	return s.ListTrips(ctx, clientID)
}

// requireClient maps a missing client row to domain.ErrClientNotFound.
func (s *ClientService) requireClient(ctx context.Context, clientID int) error {
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrClientNotFound
	}
	return nil
}

// requireTrip maps a missing trip row to domain.ErrTripNotFound.
func (s *ClientService) requireTrip(ctx context.Context, tripID int) error {
	exists, err := s.trips.Exists(ctx, tripID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrTripNotFound
	}
	return nil
}

// failureReason buckets a workflow error into a bounded metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, domain.ErrTripNotFound):
		return "trip_not_found"
	case errors.Is(err, domain.ErrTripFull):
		return "trip_full"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrNotRegistered):
		return "not_registered"
	default:
		return "storage"
	}
}
