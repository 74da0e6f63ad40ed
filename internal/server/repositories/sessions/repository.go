package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bankd/internal/server/models"
)

// Repository defines persistence operations for session rows.
type Repository interface {
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) (bool, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) error
}
