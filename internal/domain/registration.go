package domain

import "time"

// ClientTrip is the client-scoped read model: one trip the client is
// registered for, together with the registration's dates.
// PaymentDate is nil until payment occurs.
// It is built for presentation only and never persisted.
type ClientTrip struct {
	Trip         *Trip
	RegisteredAt time.Time
	PaymentDate  *time.Time
}
