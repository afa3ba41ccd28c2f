package service_test

import (
	"context"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs. An unset field panics, which flags an unexpected call.

type mockTripRepo struct {
	list          func(ctx context.Context) ([]domain.Trip, error)
	lockMaxPeople func(ctx context.Context, tripID int) (int, error)
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) LockMaxPeople(ctx context.Context, tripID int) (int, error) {
	return m.lockMaxPeople(ctx, tripID)
}

type mockClientRepo struct {
	exists      func(ctx context.Context, id int) (bool, error)
	hasConflict func(ctx context.Context, c domain.Client) (bool, error)
	create      func(ctx context.Context, c domain.Client) (domain.Client, error)
}

func (m *mockClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	return m.exists(ctx, id)
}
func (m *mockClientRepo) HasConflict(ctx context.Context, c domain.Client) (bool, error) {
	return m.hasConflict(ctx, c)
}
func (m *mockClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}

type mockRegistrationRepo struct {
	exists       func(ctx context.Context, clientID, tripID int) (bool, error)
	countByTrip  func(ctx context.Context, tripID int) (int, error)
	create       func(ctx context.Context, reg domain.Registration) error
	delete       func(ctx context.Context, clientID, tripID int) error
	listByClient func(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

func (m *mockRegistrationRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	return m.exists(ctx, clientID, tripID)
}
func (m *mockRegistrationRepo) CountByTrip(ctx context.Context, tripID int) (int, error) {
	return m.countByTrip(ctx, tripID)
}
func (m *mockRegistrationRepo) Create(ctx context.Context, reg domain.Registration) error {
	return m.create(ctx, reg)
}
func (m *mockRegistrationRepo) Delete(ctx context.Context, clientID, tripID int) error {
	return m.delete(ctx, clientID, tripID)
}
func (m *mockRegistrationRepo) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	return m.listByClient(ctx, clientID)
}

// mockTxRunner hands fn a fixed set of repos and records the outcome the real
// runner would produce: commit on nil, rollback otherwise.
type mockTxRunner struct {
	repos      repo.Repos
	committed  bool
	rolledBack bool
}

func (m *mockTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	if err := fn(ctx, m.repos); err != nil {
		m.rolledBack = true
		return err
	}
	m.committed = true
	return nil
}

// compile-time checks: the doubles must satisfy the repo interfaces.
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.ClientRepo       = (*mockClientRepo)(nil)
	_ repo.RegistrationRepo = (*mockRegistrationRepo)(nil)
	_ repo.TxRunner         = (*mockTxRunner)(nil)
)
