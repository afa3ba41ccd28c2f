package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/handler"
	"github.com/tripdesk/backend/internal/httperr"
)

// Hand-written test doubles for the Servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	list func(ctx context.Context) ([]domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}

type mockClientServicer struct {
	listTrips func(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
	create    func(ctx context.Context, c domain.Client) (domain.Client, error)
}

func (m *mockClientServicer) ListTrips(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	return m.listTrips(ctx, clientID)
}
func (m *mockClientServicer) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}

type mockRegistrationServicer struct {
	register func(ctx context.Context, clientID, tripID int) error
	cancel   func(ctx context.Context, clientID, tripID int) error
}

func (m *mockRegistrationServicer) Register(ctx context.Context, clientID, tripID int) error {
	return m.register(ctx, clientID, tripID)
}
func (m *mockRegistrationServicer) Cancel(ctx context.Context, clientID, tripID int) error {
	return m.cancel(ctx, clientID, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer         = (*mockTripServicer)(nil)
	_ handler.ClientServicer       = (*mockClientServicer)(nil)
	_ handler.RegistrationServicer = (*mockRegistrationServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router,
// the same way main.go wires it in production. Nil mocks are replaced with
// empty ones so an unexpected call panics instead of nil-dereferencing the
// interface.
func newHTTPHandler(trips *mockTripServicer, clients *mockClientServicer, regs *mockRegistrationServicer) http.Handler {
	if trips == nil {
		trips = &mockTripServicer{}
	}
	if clients == nil {
		clients = &mockClientServicer{}
	}
	if regs == nil {
		regs = &mockRegistrationServicer{}
	}
	return handler.NewServer(trips, clients, regs, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) httperr.Response {
	t.Helper()
	var resp httperr.Response
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
