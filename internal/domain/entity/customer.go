package entity

import "time"

// Customer is a customer-relationship record. Email is unique across
// customers; Region is optional free text. RegistrationDate is always
// stored as a UTC instant, whatever offset the caller supplied.
type Customer struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Region           string    `json:"region,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
}
