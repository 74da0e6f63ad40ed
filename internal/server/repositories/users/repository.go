package users

import (
	"context"

	"github.com/dmitrijs2005/bankd/internal/server/models"
)

// Repository defines persistence operations for user identity records.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
