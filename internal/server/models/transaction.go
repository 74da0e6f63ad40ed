package models

import "time"

// Transaction types and statuses.
const (
	TransactionTypeDeposit = "deposit"

	TransactionStatusCompleted = "completed"
)

// Transaction is an immutable ledger entry. Amount is positive integer cents.
// AccountType is a read-time enrichment (the owning account's type); it is
// not stored on the row.
type Transaction struct {
	ID          string
	AccountID   string
	Type        string
	Amount      int64
	Description string
	Status      string
	CreatedAt   time.Time
	ProcessedAt time.Time

	AccountType string
}
