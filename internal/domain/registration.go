package domain

import "time"

// Registration links a client to a trip. The (ClientID, TripID) pair is unique.
// RegisteredAt and PaymentDate are date keys, see DateKey.
type Registration struct {
	ClientID     int
	TripID       int
	RegisteredAt int
	PaymentDate  *int // nil until the trip is paid for
}

// ClientTrip is one row of a client's trip history: the trip itself plus
// the registration dates.
type ClientTrip struct {
	ID           int       `json:"idTrip"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DateFrom     time.Time `json:"dateFrom"`
	DateTo       time.Time `json:"dateTo"`
	MaxPeople    int       `json:"maxPeople"`
	RegisteredAt int       `json:"registeredAt"`
	PaymentDate  *int      `json:"paymentDate"`
}

// DateKey encodes the calendar date of t as an 8-digit integer YYYYMMDD,
// e.g. 2025-06-01 becomes 20250601. The time zone of t is used as-is.
func DateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// CapacityPolicy decides when a trip counts as full.
type CapacityPolicy string

const (
	// CapacityLegacy rejects a registration only once the existing count is
	// strictly greater than MaxPeople, so MaxPeople+1 clients can register.
	CapacityLegacy CapacityPolicy = "legacy"

	// CapacityStrict rejects a registration once the existing count reaches
	// MaxPeople.
	CapacityStrict CapacityPolicy = "strict"
)

// Full reports whether a trip with maxPeople seats and registered existing
// registrations must reject another one.
func (p CapacityPolicy) Full(registered, maxPeople int) bool {
	if p == CapacityStrict {
		return registered >= maxPeople
	}
	return registered > maxPeople
}

// Valid reports whether p is a known policy.
func (p CapacityPolicy) Valid() bool {
	return p == CapacityLegacy || p == CapacityStrict
}
