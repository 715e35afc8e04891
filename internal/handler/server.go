// Package handler implements the HTTP handlers for the trip registration API.
// Handlers only decode requests, call the service layer, and map sentinel
// errors to status codes; the error taxonomy itself lives in domain.
package handler

import (
	"context"

	"github.com/jmadera/tripbook/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context) ([]*domain.Trip, error)
	GetByID(ctx context.Context, id int) (*domain.Trip, error)
}

// ClientServicer defines the business operations the client handlers depend on.
type ClientServicer interface {
	Create(ctx context.Context, client domain.Client) (int, error)
	ListTrips(ctx context.Context, clientID int) ([]*domain.ClientTrip, error)
	Register(ctx context.Context, clientID, tripID int) ([]*domain.ClientTrip, error)
	Cancel(ctx context.Context, clientID, tripID int) ([]*domain.ClientTrip, error)
}

// Server holds the handlers' dependencies. Methods are split into
// domain-specific files (trip.go, client.go, health.go) but all share this
// struct.
type Server struct {
	trips   TripServicer
	clients ClientServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, clients ClientServicer) *Server {
	return &Server{trips: trips, clients: clients}
}
