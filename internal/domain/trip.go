// Package domain contains the core data types for the travel agency API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip is an organised journey clients can register for.
// Trips are seeded by migration; the API only reads them.
type Trip struct {
	ID          int       `json:"idTrip"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateFrom    time.Time `json:"dateFrom"`
	DateTo      time.Time `json:"dateTo"`
	MaxPeople   int       `json:"maxPeople"`
	Countries   []Country `json:"countries"` // never nil once loaded by the repo
}

// Country is a destination associated with zero or more trips.
type Country struct {
	ID   int    `json:"idCountry"`
	Name string `json:"name"`
}
