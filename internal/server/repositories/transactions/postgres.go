// Package transactions provides a PostgreSQL-backed repository for the
// immutable ledger entries recorded against accounts.
package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankd/internal/dbx"
	"github.com/dmitrijs2005/bankd/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new ledger entry and returns the stored row. Rows are
// never updated after this point.
func (r *PostgresRepository) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, type, amount, description, status, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		txn.AccountID, txn.Type, txn.Amount, txn.Description, txn.Status,
		txn.ProcessedAt).Scan(&txn.ID, &txn.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return txn, nil
}

// ListForAccount returns the account's ledger entries newest-first, ordered
// by created_at then id so the order is stable, each enriched with the owning
// account's type.
func (r *PostgresRepository) ListForAccount(ctx context.Context, accountID string) ([]*models.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.type, t.amount, t.description, t.status,
			t.created_at, t.processed_at, a.account_type
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.account_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		if err := rows.Scan(&txn.ID, &txn.AccountID, &txn.Type, &txn.Amount,
			&txn.Description, &txn.Status, &txn.CreatedAt, &txn.ProcessedAt,
			&txn.AccountType); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
