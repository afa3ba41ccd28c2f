package testutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/repo"
)

// MemStore is an in-memory stand-in for the Postgres repositories. It lets
// service and handler tests exercise the real business logic end to end
// without a database.
//
// WithinTx runs transactions one at a time and restores a snapshot when fn
// fails, matching the commit/rollback contract of repo.TxRunner. Calls made
// through Repos outside a transaction also take the transaction lock, so a
// rollback never discards a write that committed while it was running.
type MemStore struct {
	txMu sync.Mutex // held for a whole WithinTx, or a single call outside one

	mu           sync.Mutex
	trips        map[int]domain.Trip
	clients      map[int]domain.Client
	regs         map[[2]int]domain.Registration
	nextClientID int
}

// NewMemStore returns an empty store. Client IDs start at 1.
func NewMemStore() *MemStore {
	return &MemStore{
		trips:        map[int]domain.Trip{},
		clients:      map[int]domain.Client{},
		regs:         map[[2]int]domain.Registration{},
		nextClientID: 1,
	}
}

// AddTrip seeds a trip. A nil Countries slice is stored as empty.
func (s *MemStore) AddTrip(t domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Countries == nil {
		t.Countries = []domain.Country{}
	}
	s.trips[t.ID] = t
}

// AddRegistration seeds a registration without any checks.
func (s *MemStore) AddRegistration(r domain.Registration) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[[2]int{r.ClientID, r.TripID}] = r
}

// RegistrationCount returns the total number of stored registrations.
func (s *MemStore) RegistrationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// Repos returns repositories reading and writing this store outside any
// transaction. Each call waits for a running WithinTx to finish.
func (s *MemStore) Repos() repo.Repos {
	return s.repos(false)
}

func (s *MemStore) repos(inTx bool) repo.Repos {
	h := memHandle{s: s, inTx: inTx}
	return repo.Repos{
		Trips:         memTrips{h},
		Clients:       memClients{h},
		Registrations: memRegistrations{h},
	}
}

// memHandle is shared by the adapters. Inside WithinTx the transaction lock
// is already held, so lock only takes the data lock.
type memHandle struct {
	s    *MemStore
	inTx bool
}

func (h memHandle) lock() (unlock func()) {
	if !h.inTx {
		h.s.txMu.Lock()
	}
	h.s.mu.Lock()
	return func() {
		h.s.mu.Unlock()
		if !h.inTx {
			h.s.txMu.Unlock()
		}
	}
}

// WithinTx implements repo.TxRunner.
func (s *MemStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	clients, regs, next := maps.Clone(s.clients), maps.Clone(s.regs), s.nextClientID
	s.mu.Unlock()

	committed := false
	defer func() {
		if committed {
			return
		}
		s.mu.Lock()
		s.clients, s.regs, s.nextClientID = clients, regs, next
		s.mu.Unlock()
	}()

	if err := fn(ctx, s.repos(true)); err != nil {
		return err
	}
	committed = true
	return nil
}

type memTrips struct{ memHandle }

func (m memTrips) List(_ context.Context) ([]domain.Trip, error) {
	defer m.lock()()

	out := make([]domain.Trip, 0, len(m.s.trips))
	for _, id := range slices.Sorted(maps.Keys(m.s.trips)) {
		t := m.s.trips[id]
		t.Countries = slices.Clone(t.Countries)
		out = append(out, t)
	}
	return out, nil
}

func (m memTrips) LockMaxPeople(_ context.Context, tripID int) (int, error) {
	defer m.lock()()

	t, ok := m.s.trips[tripID]
	if !ok {
		return 0, fmt.Errorf("memstore: trip %d: %w", tripID, domain.ErrNotFound)
	}
	return t.MaxPeople, nil
}

type memClients struct{ memHandle }

func (m memClients) Exists(_ context.Context, id int) (bool, error) {
	defer m.lock()()
	_, ok := m.s.clients[id]
	return ok, nil
}

func (m memClients) HasConflict(_ context.Context, c domain.Client) (bool, error) {
	defer m.lock()()
	return m.conflictLocked(c), nil
}

func (m memClients) Create(_ context.Context, c domain.Client) (domain.Client, error) {
	defer m.lock()()

	if m.conflictLocked(c) {
		return domain.Client{}, domain.ErrConflict
	}
	c.ID = m.s.nextClientID
	m.s.nextClientID++
	m.s.clients[c.ID] = c
	return c, nil
}

func (m memClients) conflictLocked(c domain.Client) bool {
	for _, existing := range m.s.clients {
		if existing.Email == c.Email || existing.Pesel == c.Pesel || existing.Telephone == c.Telephone {
			return true
		}
	}
	return false
}

type memRegistrations struct{ memHandle }

func (m memRegistrations) Exists(_ context.Context, clientID, tripID int) (bool, error) {
	defer m.lock()()
	_, ok := m.s.regs[[2]int{clientID, tripID}]
	return ok, nil
}

func (m memRegistrations) CountByTrip(_ context.Context, tripID int) (int, error) {
	defer m.lock()()

	n := 0
	for key := range m.s.regs {
		if key[1] == tripID {
			n++
		}
	}
	return n, nil
}

func (m memRegistrations) Create(_ context.Context, reg domain.Registration) error {
	defer m.lock()()

	key := [2]int{reg.ClientID, reg.TripID}
	if _, ok := m.s.regs[key]; ok {
		return domain.ErrConflict
	}
	m.s.regs[key] = reg
	return nil
}

func (m memRegistrations) Delete(_ context.Context, clientID, tripID int) error {
	defer m.lock()()

	key := [2]int{clientID, tripID}
	if _, ok := m.s.regs[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.regs, key)
	return nil
}

func (m memRegistrations) ListByClient(_ context.Context, clientID int) ([]domain.ClientTrip, error) {
	defer m.lock()()

	out := []domain.ClientTrip{}
	for _, key := range slices.SortedFunc(maps.Keys(m.s.regs), func(a, b [2]int) int { return a[1] - b[1] }) {
		if key[0] != clientID {
			continue
		}
		reg, trip := m.s.regs[key], m.s.trips[key[1]]
		out = append(out, domain.ClientTrip{
			ID:           trip.ID,
			Name:         trip.Name,
			Description:  trip.Description,
			DateFrom:     trip.DateFrom,
			DateTo:       trip.DateTo,
			MaxPeople:    trip.MaxPeople,
			RegisteredAt: reg.RegisteredAt,
			PaymentDate:  reg.PaymentDate,
		})
	}
	return out, nil
}

// compile-time check: MemStore must satisfy repo.TxRunner.
var _ repo.TxRunner = (*MemStore)(nil)
