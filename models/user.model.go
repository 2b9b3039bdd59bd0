package models

// User represents a customer account, keyed by phone number
type User struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashedPassword,omitempty"`
	TOSAgreement   bool   `json:"tosAgreement"`
}
