package handler

import (
	"net/http"

	"github.com/tripdesk/backend/internal/domain"
)

// CreateClientRequest is the body of POST /api/clients.
type CreateClientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}

// ListClientTrips handles GET /api/clients/{clientId}/trips.
func (s *Server) ListClientTrips(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathInt(w, r, "clientId")
	if !ok {
		return
	}

	trips, err := s.clients.ListTrips(r.Context(), clientID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// CreateClient handles POST /api/clients.
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var body CreateClientRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.clients.Create(r.Context(), domain.Client{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Telephone: body.Telephone,
		Pesel:     body.Pesel,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
