package transactions

import (
	"context"

	"github.com/dmitrijs2005/bankd/internal/server/models"
)

// Repository defines persistence operations for immutable ledger entries.
type Repository interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ListForAccount(ctx context.Context, accountID string) ([]*models.Transaction, error)
}
