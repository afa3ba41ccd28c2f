package domain

// Client is a person who can register for trips.
// Email, Pesel, and Telephone are each unique across all clients.
type Client struct {
	ID        int    `json:"idClient"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}
