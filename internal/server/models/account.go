package models

import "time"

// Account types.
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
)

// Account statuses.
const (
	AccountStatusActive  = "active"
	AccountStatusPending = "pending"
	AccountStatusClosed  = "closed"
)

// ValidAccountType reports whether t names a supported account type.
func ValidAccountType(t string) bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account is a ledger entity. AccountNumber is a globally unique 10-digit
// string; Balance is integer cents and never negative.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	AccountType   string
	Balance       int64
	Status        string
	CreatedAt     time.Time
}
