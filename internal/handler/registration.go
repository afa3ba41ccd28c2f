package handler

import (
	"fmt"
	"net/http"
)

// registrationPath binds both ids of /api/clients/{clientId}/trips/{tripId}.
func registrationPath(w http.ResponseWriter, r *http.Request) (clientID, tripID int, ok bool) {
	if clientID, ok = pathInt(w, r, "clientId"); !ok {
		return 0, 0, false
	}
	if tripID, ok = pathInt(w, r, "tripId"); !ok {
		return 0, 0, false
	}
	return clientID, tripID, true
}

// RegisterClientForTrip handles PUT /api/clients/{clientId}/trips/{tripId}.
func (s *Server) RegisterClientForTrip(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := registrationPath(w, r)
	if !ok {
		return
	}

	if err := s.registrations.Register(r.Context(), clientID, tripID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("Client %d successfully registered for trip %d.", clientID, tripID))
}

// DeleteRegistration handles DELETE /api/clients/{clientId}/trips/{tripId}.
func (s *Server) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := registrationPath(w, r)
	if !ok {
		return
	}

	if err := s.registrations.Cancel(r.Context(), clientID, tripID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("Registration for client %d from trip %d successfully deleted.", clientID, tripID))
}
