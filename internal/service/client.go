package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
)

const clientExistsMessage = "Client with this email or PESEL or telephone already exists"

// ClientService implements business logic for Client operations.
// It holds the registrations repo because a client's trip history is read
// from the Client_Trip join table.
type ClientService struct {
	clients       repo.ClientRepo
	registrations repo.RegistrationRepo
}

// NewClientService constructs a ClientService backed by the provided repos.
func NewClientService(clients repo.ClientRepo, registrations repo.RegistrationRepo) *ClientService {
	return &ClientService{clients: clients, registrations: registrations}
}

// ListTrips returns every trip the client is registered for.
// Returns domain.ErrClientNotFound if the client does not exist.
func (s *ClientService) ListTrips(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.ClientService.ListTrips: %w", err)
	}
	if !exists {
		return nil, clientNotFound(clientID)
	}

	trips, err := s.registrations.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.ClientService.ListTrips: %w", err)
	}
	if trips == nil {
		return []domain.ClientTrip{}, nil
	}
	return trips, nil
}

// Create validates and persists a new client.
// Returns domain.ErrValidation for blank fields and
// domain.ErrClientAlreadyExists if the email, pesel, or telephone is taken.
func (s *ClientService) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	if err := validateClient(c); err != nil {
		return domain.Client{}, err
	}

	conflict, err := s.clients.HasConflict(ctx, c)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w", err)
	}
	if conflict {
		return domain.Client{}, domain.Errorf(domain.ErrClientAlreadyExists, clientExistsMessage)
	}

	created, err := s.clients.Create(ctx, c)
	if err != nil {
		// Another request inserted the same email/pesel/telephone between the
		// check and the insert.
		if errors.Is(err, domain.ErrConflict) {
			return domain.Client{}, domain.Errorf(domain.ErrClientAlreadyExists, clientExistsMessage)
		}
		return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w", err)
	}
	return created, nil
}

// validateClient requires every field except ID to be non-blank.
func validateClient(c domain.Client) error {
	fields := []struct {
		name, value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"telephone", c.Telephone},
		{"pesel", c.Pesel},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Errorf(domain.ErrValidation, "%s is required", f.name)
		}
	}
	return nil
}

func clientNotFound(id int) error {
	return domain.Errorf(domain.ErrClientNotFound, "Client with ID %d not found", id)
}
