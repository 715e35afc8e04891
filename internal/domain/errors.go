package domain

import "errors"

// Sentinel errors for the registration workflows. Repo and service functions
// wrap these with call-site context; handlers unwrap them with errors.Is to
// pick a status code. Any storage error that is none of these is propagated
// unchanged — the caller owns retry policy.
var (
	// ErrClientNotFound is returned when a referenced client id has no row.
	ErrClientNotFound = errors.New("client not found")

	// ErrTripNotFound is returned when a referenced trip id has no row.
	ErrTripNotFound = errors.New("trip not found")

	// ErrTripFull is returned when a trip's registration count has reached
	// its maximum at check time.
	ErrTripFull = errors.New("trip is at capacity")

	// ErrAlreadyRegistered is returned when a registration insert hits the
	// (client, trip) uniqueness constraint.
	ErrAlreadyRegistered = errors.New("client already registered for trip")

	// ErrNotRegistered is returned when a cancellation targets a valid
	// (client, trip) pair that has no registration.
	ErrNotRegistered = errors.New("client not registered for trip")
)
