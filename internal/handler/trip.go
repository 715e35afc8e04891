package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmadera/tripbook/internal/domain"
)

// dateLayout is the wire format for trip and registration dates.
const dateLayout = "2006-01-02"

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// pathID parses an integer URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// --- response mapping -------------------------------------------------------

type countryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tripResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	DateFrom    string            `json:"date_from"`
	DateTo      string            `json:"date_to"`
	MaxPeople   int               `json:"max_people"`
	Countries   []countryResponse `json:"countries"`
}

func tripToResponse(t *domain.Trip) tripResponse {
	countries := make([]countryResponse, len(t.Countries))
	for i, c := range t.Countries {
		countries[i] = countryResponse{ID: c.ID, Name: c.Name}
	}
	return tripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		DateFrom:    t.StartDate.Format(dateLayout),
		DateTo:      t.EndDate.Format(dateLayout),
		MaxPeople:   t.MaxPeople,
		Countries:   countries,
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
