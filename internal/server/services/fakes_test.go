package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankd/internal/common"
	"github.com/dmitrijs2005/bankd/internal/dbx"
	"github.com/dmitrijs2005/bankd/internal/logging"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/users"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}

func (l nopLogger) With(args ...any) logging.Logger { return l }

// memUsers is an in-memory users.Repository.
type memUsers struct {
	byID    map[string]*models.User
	nextID  int
	findErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (r *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("u-%d", r.nextID)
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	return user, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

// memSessions is an in-memory sessions.Repository.
type memSessions struct {
	byToken map[string]*models.Session
	findErr error
}

func newMemSessions() *memSessions {
	return &memSessions{byToken: map[string]*models.Session{}}
}

func (r *memSessions) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	r.byToken[token] = &models.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (r *memSessions) Find(ctx context.Context, token string) (*models.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if s, ok := r.byToken[token]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memSessions) Delete(ctx context.Context, token string) (bool, error) {
	if _, ok := r.byToken[token]; !ok {
		return false, nil
	}
	delete(r.byToken, token)
	return true, nil
}

func (r *memSessions) DeleteAllForUser(ctx context.Context, userID string) error {
	for token, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, token)
		}
	}
	return nil
}

func (r *memSessions) DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) error {
	for token, s := range r.byToken {
		if s.UserID == userID && !s.ExpiresAt.After(now) {
			delete(r.byToken, token)
		}
	}
	return nil
}

// memAccounts is an in-memory accounts.Repository. numberTakenOnce makes the
// first insert attempt fail with a unique violation to exercise the retry.
type memAccounts struct {
	byID            map[string]*models.Account
	nextID          int
	numberTakenOnce bool
	getByIDErr      error
	createErr       error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*models.Account{}}
}

func (r *memAccounts) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return nil, err
	}
	if r.numberTakenOnce {
		r.numberTakenOnce = false
		return nil, common.ErrorAlreadyExists
	}
	for _, a := range r.byID {
		if a.UserID == account.UserID && a.AccountType == account.AccountType {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	account.ID = fmt.Sprintf("a-%d", r.nextID)
	account.CreatedAt = time.Now()
	r.byID[account.ID] = account
	return account, nil
}

func (r *memAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if r.getByIDErr != nil {
		return nil, r.getByIDErr
	}
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memAccounts) GetByIDForUser(ctx context.Context, id, userID string) (*models.Account, error) {
	if a, ok := r.byID[id]; ok && a.UserID == userID {
		return a, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memAccounts) GetByUserAndType(ctx context.Context, userID, accountType string) (*models.Account, error) {
	for _, a := range r.byID {
		if a.UserID == userID && a.AccountType == accountType {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memAccounts) ListForUser(ctx context.Context, userID string) ([]*models.Account, error) {
	var result []*models.Account
	for _, a := range r.byID {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *memAccounts) NumberExists(ctx context.Context, accountNumber string) (bool, error) {
	for _, a := range r.byID {
		if a.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAccounts) IncrementBalance(ctx context.Context, id string, amount int64) error {
	a, ok := r.byID[id]
	if !ok {
		return errors.New("no such account")
	}
	a.Balance += amount
	return nil
}

// memTransactions is an in-memory transactions.Repository.
type memTransactions struct {
	rows      []*models.Transaction
	nextID    int
	createErr error
}

func newMemTransactions() *memTransactions {
	return &memTransactions{}
}

func (r *memTransactions) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	txn.ID = fmt.Sprintf("t-%d", r.nextID)
	txn.CreatedAt = time.Now()
	r.rows = append(r.rows, txn)
	return txn, nil
}

func (r *memTransactions) ListForAccount(ctx context.Context, accountID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].AccountID == accountID {
			result = append(result, r.rows[i])
		}
	}
	return result, nil
}

// fakeRepoManager vends the in-memory repositories regardless of the DBTX,
// so services can be exercised without a real store.
type fakeRepoManager struct {
	users        *memUsers
	sessions     *memSessions
	accounts     *memAccounts
	transactions *memTransactions
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:        newMemUsers(),
		sessions:     newMemSessions(),
		accounts:     newMemAccounts(),
		transactions: newMemTransactions(),
	}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository { return m.sessions }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository { return m.accounts }

func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactions.Repository { return m.transactions }

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
