// Package repo contains all database access logic for the travel agency API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Trips         TripRepo
	Clients       ClientRepo
	Registrations RegistrationRepo
}

// NewRepos binds every repository to db.
// In production pass *pgxpool.Pool; inside a transaction pass the pgx.Tx.
func NewRepos(db db) Repos {
	return Repos{
		Trips:         NewTripRepo(db),
		Clients:       NewClientRepo(db),
		Registrations: NewRegistrationRepo(db),
	}
}

// TxRunner runs a unit of work inside a single database transaction.
type TxRunner interface {
	// WithinTx begins a transaction and calls fn with repositories bound to it.
	// The transaction commits when fn returns nil and rolls back on any other
	// exit path, including a panic inside fn.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool and pgx.Tx (which opens a savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTxRunner struct {
	db beginner
}

// NewTxRunner constructs a TxRunner that opens transactions on db.
func NewTxRunner(db beginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.WithinTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning pgx.ErrTxClosed.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.WithinTx: commit: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
