package repo_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/backend/internal/domain"
)

// fixtureDB is satisfied by pgx.Tx and *pgxpool.Pool, so fixtures can be
// written inside a rolled-back test transaction or committed through a pool.
type fixtureDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// fixtureSeq makes unique column values across fixtures within one run.
var fixtureSeq atomic.Int64

// insertTrip writes a trip directly and returns its generated ID.
func insertTrip(t *testing.T, tx fixtureDB, name string, maxPeople int) int {
	t.Helper()
	var id int
	err := tx.QueryRow(context.Background(), `
		INSERT INTO Trip (Name, Description, DateFrom, DateTo, MaxPeople)
		VALUES ($1, 'fixture', $2, $3, $4)
		RETURNING IdTrip`,
		name,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC),
		maxPeople,
	).Scan(&id)
	require.NoError(t, err, "insert trip")
	return id
}

// insertCountry writes a country and links it to each of the given trips.
func insertCountry(t *testing.T, tx fixtureDB, name string, tripIDs ...int) int {
	t.Helper()
	ctx := context.Background()
	var id int
	err := tx.QueryRow(ctx, `INSERT INTO Country (Name) VALUES ($1) RETURNING IdCountry`, name).Scan(&id)
	require.NoError(t, err, "insert country")
	for _, tripID := range tripIDs {
		_, err := tx.Exec(ctx, `INSERT INTO Country_Trip (IdCountry, IdTrip) VALUES ($1, $2)`, id, tripID)
		require.NoError(t, err, "link country to trip")
	}
	return id
}

// clientFixture returns a client whose unique fields do not collide with any
// other fixture.
func clientFixture() domain.Client {
	n := fixtureSeq.Add(1)
	stamp := time.Now().UnixNano()
	return domain.Client{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     fmt.Sprintf("ann%d-%d@example.com", n, stamp),
		Telephone: fmt.Sprintf("+48-%d-%d", n, stamp),
		Pesel:     fmt.Sprintf("P%d-%d", n, stamp),
	}
}
