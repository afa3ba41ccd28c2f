package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripdesk/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns every trip with its countries, ordered by trip id ascending.
	// Trips without countries carry an empty, non-nil Countries slice.
	List(ctx context.Context) ([]domain.Trip, error)

	// LockMaxPeople returns the trip's MaxPeople and locks the trip row until
	// the surrounding transaction ends, so concurrent registrations for the
	// same trip run one after another.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	LockMaxPeople(ctx context.Context, tripID int) (int, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// List groups the LEFT JOIN rows by trip. buildListTrips orders rows by trip
// id, so a trip's rows are contiguous and a change of id starts a new trip.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q, args, err := buildListTrips()
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, country, err := scanTripCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}

		if n := len(trips); n == 0 || trips[n-1].ID != t.ID {
			t.Countries = []domain.Country{}
			trips = append(trips, t)
		}
		if country == nil {
			continue
		}
		last := &trips[len(trips)-1]
		if k := len(last.Countries); k > 0 && last.Countries[k-1].ID == country.ID {
			continue
		}
		last.Countries = append(last.Countries, *country)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

func (r *pgTripRepo) LockMaxPeople(ctx context.Context, tripID int) (int, error) {
	const q = `
		SELECT MaxPeople
		FROM Trip
		WHERE IdTrip = @id
		FOR UPDATE`

	var maxPeople int
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID}).Scan(&maxPeople)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("repo.TripRepo.LockMaxPeople: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("repo.TripRepo.LockMaxPeople: %w", err)
	}
	return maxPeople, nil
}

// scanTripCountry maps one row of the trips projection. The returned country
// is nil when the LEFT JOIN found no country for the trip.
func scanTripCountry(s scanner) (domain.Trip, *domain.Country, error) {
	var (
		t           domain.Trip
		countryID   pgtype.Int4
		countryName pgtype.Text
	)

	err := s.Scan(&t.ID, &t.Name, &t.Description, &t.DateFrom, &t.DateTo, &t.MaxPeople,
		&countryID, &countryName)
	if err != nil {
		return domain.Trip{}, nil, err
	}

	if !countryID.Valid {
		return t, nil, nil
	}
	return t, &domain.Country{ID: int(countryID.Int32), Name: countryName.String}, nil
}
