package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripdesk/backend/internal/domain"
)

// RegistrationRepo defines the persistence operations for the Client_Trip
// join table.
type RegistrationRepo interface {
	// Exists reports whether the client is registered for the trip.
	Exists(ctx context.Context, clientID, tripID int) (bool, error)

	// CountByTrip returns the number of registrations for the trip.
	CountByTrip(ctx context.Context, tripID int) (int, error)

	// Create inserts a registration.
	// Returns domain.ErrConflict if the (client, trip) pair already exists.
	Create(ctx context.Context, reg domain.Registration) error

	// Delete removes the registration for the (client, trip) pair.
	// Returns domain.ErrNotFound if there is none.
	Delete(ctx context.Context, clientID, tripID int) error

	// ListByClient returns every trip the client is registered for, joined
	// with the registration dates, ordered by trip id.
	ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

// pgRegistrationRepo is the Postgres implementation of RegistrationRepo.
type pgRegistrationRepo struct {
	db db
}

// NewRegistrationRepo constructs a RegistrationRepo backed by the provided db connection.
func NewRegistrationRepo(db db) RegistrationRepo {
	return &pgRegistrationRepo{db: db}
}

func (r *pgRegistrationRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM Client_Trip
			WHERE IdClient = @client_id AND IdTrip = @trip_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.RegistrationRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgRegistrationRepo) CountByTrip(ctx context.Context, tripID int) (int, error) {
	const q = `SELECT COUNT(*) FROM Client_Trip WHERE IdTrip = @trip_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.RegistrationRepo.CountByTrip: %w", err)
	}
	return n, nil
}

func (r *pgRegistrationRepo) Create(ctx context.Context, reg domain.Registration) error {
	const q = `
		INSERT INTO Client_Trip (IdClient, IdTrip, RegisteredAt, PaymentDate)
		VALUES (@client_id, @trip_id, @registered_at, @payment_date)`

	args := pgx.NamedArgs{
		"client_id":     reg.ClientID,
		"trip_id":       reg.TripID,
		"registered_at": reg.RegisteredAt,
		"payment_date":  reg.PaymentDate, // nil becomes NULL
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.RegistrationRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.RegistrationRepo.Create: %w", err)
	}
	return nil
}

func (r *pgRegistrationRepo) Delete(ctx context.Context, clientID, tripID int) error {
	const q = `DELETE FROM Client_Trip WHERE IdClient = @client_id AND IdTrip = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.RegistrationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RegistrationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRegistrationRepo) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	const q = `
		SELECT T.IdTrip, T.Name, T.Description, T.DateFrom, T.DateTo, T.MaxPeople,
		       CT.RegisteredAt, CT.PaymentDate
		FROM Trip T
		JOIN Client_Trip CT ON CT.IdTrip = T.IdTrip
		WHERE CT.IdClient = @client_id
		ORDER BY T.IdTrip`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("repo.RegistrationRepo.ListByClient: %w", err)
	}
	defer rows.Close()

	trips := []domain.ClientTrip{}
	for rows.Next() {
		ct, err := scanClientTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RegistrationRepo.ListByClient: scan: %w", err)
		}
		trips = append(trips, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RegistrationRepo.ListByClient: rows: %w", err)
	}
	return trips, nil
}

// scanClientTrip maps one joined row, converting the nullable PaymentDate.
func scanClientTrip(s scanner) (domain.ClientTrip, error) {
	var (
		ct          domain.ClientTrip
		paymentDate pgtype.Int4
	)

	err := s.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.DateFrom, &ct.DateTo, &ct.MaxPeople,
		&ct.RegisteredAt, &paymentDate)
	if err != nil {
		return domain.ClientTrip{}, err
	}

	if paymentDate.Valid {
		pd := int(paymentDate.Int32)
		ct.PaymentDate = &pd
	}
	return ct, nil
}
