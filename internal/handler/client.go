package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jmadera/tripbook/internal/domain"
)

// createClientRequest is the POST /api/clients body. Field-format validation
// (email, phone, national id patterns) happens upstream of this service;
// handlers reject only bodies that fail to decode.
type createClientRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
}

// CreateClient handles POST /api/clients.
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	id, err := s.clients.Create(r.Context(), domain.Client{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// ListClientTrips handles GET /api/clients/{clientID}/trips.
// A client with no registrations gets an empty list, not a 404.
func (s *Server) ListClientTrips(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(w, r, "clientID")
	if !ok {
		return
	}

	views, err := s.clients.ListTrips(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clientTripsToResponse(views))
}

// RegisterClientForTrip handles PUT /api/clients/{clientID}/trips/{tripID}.
func (s *Server) RegisterClientForTrip(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(w, r, "clientID")
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	views, err := s.clients.Register(r.Context(), clientID, tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, clientTripsToResponse(views))
}

// CancelClientRegistration handles DELETE /api/clients/{clientID}/trips/{tripID}.
func (s *Server) CancelClientRegistration(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(w, r, "clientID")
	if !ok {
		return
	}
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	views, err := s.clients.Cancel(r.Context(), clientID, tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clientTripsToResponse(views))
}

// --- response mapping -------------------------------------------------------

type clientTripResponse struct {
	Trip         tripResponse `json:"trip"`
	RegisteredAt string       `json:"registered_at"`
	PaymentDate  *string      `json:"payment_date"`
}

func clientTripsToResponse(views []*domain.ClientTrip) []clientTripResponse {
	data := make([]clientTripResponse, len(views))
	for i, v := range views {
		resp := clientTripResponse{
			Trip:         tripToResponse(v.Trip),
			RegisteredAt: formatDate(v.RegisteredAt),
		}
		if v.PaymentDate != nil {
			paid := formatDate(*v.PaymentDate)
			resp.PaymentDate = &paid
		}
		data[i] = resp
	}
	return data
}
