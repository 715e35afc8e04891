// Package domain contains the core data types for the trip registration service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip represents a capacity-limited travel offering.
// A trip is associated with one or more countries through a many-to-many
// relation; the Countries slice holds shared *Country references so the same
// country appearing on several trips is represented by a single value.
type Trip struct {
	ID          int
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	MaxPeople   int
	Countries   []*Country
}
