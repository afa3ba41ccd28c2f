package repo

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/tripdesk/backend/internal/domain"
)

// psql builds statements with Postgres-style $n placeholders, which pgx
// accepts as positional arguments.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListTrips returns the trips projection: one row per (trip, country)
// pair, or a single row with NULL country columns for a trip with none.
// Rows are ordered so that all rows of a trip are adjacent.
func buildListTrips() (string, []any, error) {
	return psql.
		Select(
			"T.IdTrip", "T.Name", "T.Description", "T.DateFrom", "T.DateTo", "T.MaxPeople",
			"C.IdCountry", "C.Name",
		).
		From("Trip T").
		LeftJoin("Country_Trip CT ON CT.IdTrip = T.IdTrip").
		LeftJoin("Country C ON C.IdCountry = CT.IdCountry").
		OrderBy("T.IdTrip", "C.IdCountry").
		ToSql()
}

// buildCountClientConflicts counts clients sharing the email, pesel, or
// telephone of c. Any single match is a conflict.
func buildCountClientConflicts(c domain.Client) (string, []any, error) {
	return psql.
		Select("COUNT(1)").
		From("Client").
		Where(sq.Or{
			sq.Eq{"Email": c.Email},
			sq.Eq{"Pesel": c.Pesel},
			sq.Eq{"Telephone": c.Telephone},
		}).
		ToSql()
}
