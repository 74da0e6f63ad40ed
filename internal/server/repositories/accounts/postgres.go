// Package accounts provides a PostgreSQL-backed repository for ledger
// accounts.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bankd/internal/common"
	"github.com/dmitrijs2005/bankd/internal/dbx"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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

const accountColumns = `id, user_id, account_number, account_type, balance, status, created_at`

// Create inserts a new account and returns the stored row. Unique-constraint
// violations (account number, or user/type pair) yield
// common.ErrorAlreadyExists so callers can retry or reject.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, account_number, account_type, balance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.UserID, account.AccountNumber, account.AccountType,
		account.Balance, account.Status).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByID returns the account with the given id.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUser returns the account only when it belongs to userID.
// A missing row and a row owned by someone else are both common.ErrorNotFound,
// so callers cannot distinguish the two.
func (r *PostgresRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// GetByUserAndType returns the user's account of the given type.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUserAndType(ctx context.Context, userID, accountType string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND account_type = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, accountType))
}

// ListForUser returns all accounts owned by the user.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.UserID, &account.AccountNumber,
			&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// NumberExists reports whether an account with the given number exists.
func (r *PostgresRepository) NumberExists(ctx context.Context, accountNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// IncrementBalance adds amount to the account's balance server-side.
// The additive update is evaluated by the store, so concurrent calls on the
// same account cannot lose an update.
func (r *PostgresRepository) IncrementBalance(ctx context.Context, id string, amount int64) error {
	query := `
		UPDATE accounts SET balance = balance + $1
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, amount, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.ID, &account.UserID, &account.AccountNumber,
		&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
