package domain

// Client represents a person who can register for trips.
// Clients are immutable once created; there is no update operation.
// Field-format validation (email, phone, national id patterns) happens at the
// edge — by the time a Client reaches this package its fields are well-formed.
type Client struct {
	ID         int
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	NationalID string
}
