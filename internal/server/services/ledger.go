package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankd/internal/common"
	"github.com/dmitrijs2005/bankd/internal/dbx"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/repomanager"
)

// Funding source types accepted by FundAccount.
const (
	FundingSourceCard = "card"
	FundingSourceBank = "bank"
)

// FundingSource describes where a deposit originates. Card numbers are
// checksum-validated; bank sources are not (routing number format is out of
// scope here).
type FundingSource struct {
	Type          string
	CardNumber    string
	AccountNumber string
	RoutingNumber string
}

// FundResult reports the recorded ledger entry and the authoritative balance
// after the deposit.
type FundResult struct {
	TransactionID string
	NewBalance    int64
}

// LedgerService owns account creation and the ledger mutation protocol:
// turning a funding request into a durable transaction record plus a
// consistent balance update.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// CreateAccount opens an account of the given type for the user. A user holds
// at most one account per type (common.ErrorDuplicateAccountType otherwise).
//
// The account number is drawn from a secure random source and regenerated
// until unused; the loop retries indefinitely because correctness, not
// latency, is the contract, and the store's unique index backstops the
// check-then-insert race. If the post-insert re-read fails, a synthesized
// non-persisted projection with status "pending" is returned instead of an
// error; callers seeing "pending" should re-fetch to confirm.
func (s *LedgerService) CreateAccount(ctx context.Context, userID, accountType string) (*models.Account, error) {
	if !models.ValidAccountType(accountType) {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Accounts(s.db)

	if _, err := repo.GetByUserAndType(ctx, userID, accountType); err == nil {
		return nil, common.ErrorDuplicateAccountType
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	var created *models.Account
	for {
		number, err := common.MakeAccountNumber()
		if err != nil {
			return nil, common.ErrorInternal
		}

		taken, err := repo.NumberExists(ctx, number)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if taken {
			continue
		}

		account := &models.Account{
			UserID:        userID,
			AccountNumber: number,
			AccountType:   accountType,
			Balance:       0,
			Status:        models.AccountStatusActive,
		}

		created, err = repo.Create(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Either the number lost a race (retry with a fresh one) or a
			// concurrent call created this user/type pair (reject).
			if _, dupErr := repo.GetByUserAndType(ctx, userID, accountType); dupErr == nil {
				return nil, common.ErrorDuplicateAccountType
			}
			continue
		}
		return nil, common.ErrorInternal
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		pending := *created
		pending.Status = models.AccountStatusPending
		return &pending, nil
	}

	return stored, nil
}

// GetAccounts returns all accounts owned by the user.
func (s *LedgerService) GetAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	result, err := s.repomanager.Accounts(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// FundAccount records a completed deposit and increments the balance by
// exactly amount. The transaction insert and the balance update run in one
// all-or-nothing unit; the increment is evaluated server-side so concurrent
// deposits on the same account cannot lose an update.
//
// An account not owned by userID reports common.ErrorNotFound, never a
// forbidden-style error, so existence is not confirmed to non-owners.
func (s *LedgerService) FundAccount(ctx context.Context, userID, accountID string, amount int64, source FundingSource) (*FundResult, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByIDForUser(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if account.Status != models.AccountStatusActive {
		return nil, common.ErrorAccountInactive
	}

	if amount <= 0 {
		return nil, common.ErrorInvalidAmount
	}

	if source.Type == FundingSourceCard && !luhnValid(source.CardNumber) {
		return nil, common.ErrorInvalidCardNumber
	}

	now := time.Now()
	var recorded *models.Transaction

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txn := &models.Transaction{
			AccountID:   accountID,
			Type:        models.TransactionTypeDeposit,
			Amount:      amount,
			Description: fmt.Sprintf("Deposit from %s", source.Type),
			Status:      models.TransactionStatusCompleted,
			ProcessedAt: now,
		}

		var txErr error
		recorded, txErr = s.repomanager.Transactions(tx).Create(ctx, txn)
		if txErr != nil {
			return txErr
		}

		return s.repomanager.Accounts(tx).IncrementBalance(ctx, accountID, amount)
	})
	if err != nil {
		return nil, common.ErrorInternal
	}

	newBalance := account.Balance
	if updated, err := repo.GetByID(ctx, accountID); err == nil {
		newBalance = updated.Balance
	}

	return &FundResult{TransactionID: recorded.ID, NewBalance: newBalance}, nil
}

// GetTransactions returns the account's ledger entries newest-first, each
// enriched with the account's type. Ownership is checked exactly as in
// FundAccount.
func (s *LedgerService) GetTransactions(ctx context.Context, userID, accountID string) ([]*models.Transaction, error) {
	if _, err := s.repomanager.Accounts(s.db).GetByIDForUser(ctx, accountID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	result, err := s.repomanager.Transactions(s.db).ListForAccount(ctx, accountID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// luhnValid reports whether number passes the Luhn checksum. Any non-digit
// makes the number invalid.
func luhnValid(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}
