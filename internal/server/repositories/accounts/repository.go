package accounts

import (
	"context"

	"github.com/dmitrijs2005/bankd/internal/server/models"
)

// Repository defines persistence operations for ledger accounts.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Account, error)
	GetByUserAndType(ctx context.Context, userID, accountType string) (*models.Account, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Account, error)
	NumberExists(ctx context.Context, accountNumber string) (bool, error)
	IncrementBalance(ctx context.Context, id string, amount int64) error
}
