package domain

// Country is a destination shared by reference across trips.
// Countries are global — not owned by any single trip.
type Country struct {
	ID   int
	Name string
}
