package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/handler"
	"github.com/tripdesk/backend/internal/service"
	"github.com/tripdesk/backend/testutil"
)

// newStoreHandler wires the real services over an in-memory store, so these
// tests cover routing, services and status mapping together.
func newStoreHandler(t *testing.T, store *testutil.MemStore) http.Handler {
	t.Helper()
	repos := store.Repos()
	clock := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local) }
	srv := handler.NewServer(
		service.NewTripService(repos.Trips),
		service.NewClientService(repos.Clients, repos.Registrations),
		service.NewRegistrationService(store, repos.Registrations, domain.CapacityLegacy, service.WithClock(clock)),
		nil,
	)
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScenario_CreateRegisterDuplicateDelete(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(domain.Trip{ID: 1, Name: "Rome", MaxPeople: 10})
	h := newStoreHandler(t, store)

	rec := do(t, h, http.MethodPost, "/api/clients", map[string]string{
		"firstName": "Anna",
		"lastName":  "Nowak",
		"email":     "anna@example.com",
		"telephone": "600100200",
		"pesel":     "90010112345",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.Equal(t, 1, created.ID)

	rec = do(t, h, http.MethodPut, "/api/clients/1/trips/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Client 1 successfully registered for trip 1.", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/clients/1/trips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trips []domain.ClientTrip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trips))
	require.Len(t, trips, 1)
	assert.Equal(t, 20261014, trips[0].RegisteredAt)
	assert.Nil(t, trips[0].PaymentDate)

	rec = do(t, h, http.MethodPut, "/api/clients/1/trips/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, store.RegistrationCount())

	rec = do(t, h, http.MethodDelete, "/api/clients/1/trips/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Registration for client 1 from trip 1 successfully deleted.", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/clients/1/trips/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, store.RegistrationCount())
}

func TestScenario_DuplicateClientRejected(t *testing.T) {
	h := newStoreHandler(t, testutil.NewMemStore())
	body := map[string]string{
		"firstName": "Anna", "lastName": "Nowak",
		"email": "anna@example.com", "telephone": "600100200", "pesel": "90010112345",
	}

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/clients", body).Code)

	body["email"] = "other@example.com"
	rec := do(t, h, http.MethodPost, "/api/clients", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestScenario_RegisterUnknownClientAndTrip(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(domain.Trip{ID: 1, Name: "Rome", MaxPeople: 10})
	h := newStoreHandler(t, store)

	rec := do(t, h, http.MethodPut, "/api/clients/99/trips/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Client with ID 99 not found", decodeError(t, rec.Body).Error.Message)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/clients", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.c", "telephone": "1", "pesel": "2",
	}).Code)

	rec = do(t, h, http.MethodPut, "/api/clients/1/trips/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trip with ID 42 not found.", decodeError(t, rec.Body).Error.Message)
	assert.Equal(t, 0, store.RegistrationCount())
}

func TestScenario_ListTripsIncludesTripWithoutCountry(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(domain.Trip{ID: 2, Name: "Nowhere"})
	store.AddTrip(domain.Trip{ID: 1, Name: "Rome", Countries: []domain.Country{{ID: 1, Name: "Italy"}}})
	h := newStoreHandler(t, store)

	rec := do(t, h, http.MethodGet, "/api/trips", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var trips []domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trips))
	require.Len(t, trips, 2)
	assert.Equal(t, 1, trips[0].ID)
	assert.Equal(t, 2, trips[1].ID)
	assert.NotNil(t, trips[1].Countries)
	assert.Empty(t, trips[1].Countries)
}
