package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripdesk/backend/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
type ClientRepo interface {
	// Exists reports whether a client with the given ID exists.
	Exists(ctx context.Context, id int) (bool, error)

	// HasConflict reports whether any existing client shares the email,
	// pesel, or telephone of c.
	HasConflict(ctx context.Context, c domain.Client) (bool, error)

	// Create inserts c and returns it with the DB-assigned ID. The other
	// fields are returned exactly as submitted.
	// Returns domain.ErrConflict if a uniqueness constraint rejects the row.
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

func (r *pgClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM Client WHERE IdClient = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ClientRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgClientRepo) HasConflict(ctx context.Context, c domain.Client) (bool, error) {
	q, args, err := buildCountClientConflicts(c)
	if err != nil {
		return false, fmt.Errorf("repo.ClientRepo.HasConflict: build: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("repo.ClientRepo.HasConflict: %w", err)
	}
	return n > 0, nil
}

// Create does not re-read the row; only the generated ID comes back.
func (r *pgClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	const q = `
		INSERT INTO Client (FirstName, LastName, Email, Telephone, Pesel)
		VALUES (@first_name, @last_name, @email, @telephone, @pesel)
		RETURNING IdClient`

	args := pgx.NamedArgs{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"telephone":  c.Telephone,
		"pesel":      c.Pesel,
	}

	if err := r.db.QueryRow(ctx, q, args).Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return c, nil
}
