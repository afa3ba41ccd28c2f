package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
)

// RegistrationService registers clients for trips and cancels registrations.
type RegistrationService struct {
	tx            repo.TxRunner
	registrations repo.RegistrationRepo
	policy        domain.CapacityPolicy
	now           func() time.Time
	log           *slog.Logger
}

// RegistrationOption customises a RegistrationService.
type RegistrationOption func(*RegistrationService)

// WithClock replaces time.Now as the source of the registration date.
func WithClock(now func() time.Time) RegistrationOption {
	return func(s *RegistrationService) { s.now = now }
}

// WithLogger sets the logger used for registration outcomes.
func WithLogger(l *slog.Logger) RegistrationOption {
	return func(s *RegistrationService) { s.log = l }
}

// NewRegistrationService constructs a RegistrationService. Register runs its
// checks through tx; Cancel uses registrations directly since it is a single
// statement. An invalid policy falls back to domain.CapacityLegacy.
func NewRegistrationService(tx repo.TxRunner, registrations repo.RegistrationRepo, policy domain.CapacityPolicy, opts ...RegistrationOption) *RegistrationService {
	if !policy.Valid() {
		policy = domain.CapacityLegacy
	}
	s := &RegistrationService{
		tx:            tx,
		registrations: registrations,
		policy:        policy,
		now:           time.Now,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register registers the client for the trip inside one transaction. The
// checks run in this order and the first failure rolls back with no insert:
//
//  1. the client exists (domain.ErrClientNotFound)
//  2. the trip exists (domain.ErrTripNotFound); its row stays locked
//  3. the client is not yet registered (domain.ErrClientAlreadyRegistered)
//  4. the trip is not full under the capacity policy (domain.ErrTripFull)
//
// The new registration is dated today with no payment date.
func (s *RegistrationService) Register(ctx context.Context, clientID, tripID int) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		exists, err := r.Clients.Exists(ctx, clientID)
		if err != nil {
			return err
		}
		if !exists {
			return clientNotFound(clientID)
		}

		maxPeople, err := r.Trips.LockMaxPeople(ctx, tripID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Errorf(domain.ErrTripNotFound, "Trip with ID %d not found.", tripID)
			}
			return err
		}

		registered, err := r.Registrations.Exists(ctx, clientID, tripID)
		if err != nil {
			return err
		}
		if registered {
			return alreadyRegistered(clientID, tripID)
		}

		count, err := r.Registrations.CountByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		if s.policy.Full(count, maxPeople) {
			return domain.Errorf(domain.ErrTripFull,
				"Trip with ID %d is already full. Max capacity: %d, Current registrations: %d.",
				tripID, maxPeople, count)
		}

		err = r.Registrations.Create(ctx, domain.Registration{
			ClientID:     clientID,
			TripID:       tripID,
			RegisteredAt: domain.DateKey(s.now()),
		})
		if errors.Is(err, domain.ErrConflict) {
			return alreadyRegistered(clientID, tripID)
		}
		return err
	})
	if err != nil {
		s.log.DebugContext(ctx, "registration rejected",
			"client_id", clientID, "trip_id", tripID, "error", err)
		return fmt.Errorf("service.RegistrationService.Register: %w", err)
	}

	s.log.InfoContext(ctx, "client registered for trip", "client_id", clientID, "trip_id", tripID)
	return nil
}

// Cancel deletes the client's registration for the trip.
// Returns domain.ErrRegistrationNotFound if there is none.
func (s *RegistrationService) Cancel(ctx context.Context, clientID, tripID int) error {
	if err := s.registrations.Delete(ctx, clientID, tripID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Errorf(domain.ErrRegistrationNotFound,
				"Registration for client ID %d on trip ID %d not found.", clientID, tripID)
		}
		return fmt.Errorf("service.RegistrationService.Cancel: %w", err)
	}

	s.log.InfoContext(ctx, "registration cancelled", "client_id", clientID, "trip_id", tripID)
	return nil
}

func alreadyRegistered(clientID, tripID int) error {
	return domain.Errorf(domain.ErrClientAlreadyRegistered,
		"Client with ID %d is already registered for trip ID %d.", clientID, tripID)
}
