package models

import "time"

// User is an identity record. Email is stored lower-cased; PasswordHash is a
// bcrypt hash and SSNHash a hex-encoded SHA-256 digest. Neither hash ever
// leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	SSNHash      string
	FirstName    string
	LastName     string
	PhoneNumber  string
	DateOfBirth  string
	Address      string
	City         string
	State        string
	ZipCode      string
	CreatedAt    time.Time
}
