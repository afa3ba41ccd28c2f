// Package handler implements the HTTP handlers for the travel agency API.
// All handlers are methods on Server. Methods are split into resource files
// (trip.go, client.go, registration.go) but share the Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/spec"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
}

// ClientServicer defines the client operations the handlers depend on.
type ClientServicer interface {
	ListTrips(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
}

// RegistrationServicer defines the registration operations the handlers depend on.
type RegistrationServicer interface {
	Register(ctx context.Context, clientID, tripID int) error
	Cancel(ctx context.Context, clientID, tripID int) error
}

// Server serves every API endpoint. Wire it in main.go via Routes.
type Server struct {
	trips         TripServicer
	clients       ClientServicer
	registrations RegistrationServicer
	log           *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(trips TripServicer, clients ClientServicer, registrations RegistrationServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, clients: clients, registrations: registrations, log: log}
}

// Routes returns a chi router with every endpoint registered.
// Resource routes live under /api; /healthz and /openapi.yaml sit at the root.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/api/trips", s.ListTrips)
	r.Post("/api/clients", s.CreateClient)
	r.Get("/api/clients/{clientId}/trips", s.ListClientTrips)
	r.Put("/api/clients/{clientId}/trips/{tripId}", s.RegisterClientForTrip)
	r.Delete("/api/clients/{clientId}/trips/{tripId}", s.DeleteRegistration)

	return r
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
