package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/bankd/internal/client/api"
)

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// Accounts prints the caller's accounts.
func (a *App) Accounts(ctx context.Context) {
	accounts, err := a.api.Accounts(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if len(accounts) == 0 {
		printlnFn("No accounts yet. Use 'open' to create one.")
		return
	}

	for _, acc := range accounts {
		printlnFn(fmt.Sprintf("%s  %s  %-8s  %-7s  %s",
			acc.ID, acc.AccountNumber, acc.AccountType, acc.Status, formatCents(acc.Balance)))
	}
}

// CreateAccount opens a checking or savings account.
func (a *App) CreateAccount(ctx context.Context) {
	accountType, err := GetSimpleText(a.reader, "Account type (checking/savings)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	account, err := a.api.CreateAccount(ctx, accountType)
	if err != nil {
		log.Printf("Could not open account: %v", err)
		return
	}

	if account.Status == "pending" {
		printlnFn("Account creation is pending; run 'accounts' to confirm.")
		return
	}
	printlnFn("Opened", account.AccountType, "account", account.AccountNumber)
}

// Fund deposits into one of the caller's accounts.
func (a *App) Fund(ctx context.Context) {
	accountID, err := GetSimpleText(a.reader, "Account id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	amountText, err := GetSimpleText(a.reader, "Amount in cents", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil || amount <= 0 {
		printlnFn("Amount must be a positive integer (cents).")
		return
	}

	sourceType, err := GetSimpleText(a.reader, "Funding source (card/bank)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	source := api.FundingSource{Type: sourceType}
	if sourceType == "card" {
		source.CardNumber, err = GetSimpleText(a.reader, "Card number", os.Stdout)
	} else {
		source.AccountNumber, err = GetSimpleText(a.reader, "Bank account number", os.Stdout)
	}
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	result, err := a.api.Fund(ctx, accountID, amount, source)
	if err != nil {
		log.Printf("Funding failed: %v", err)
		return
	}

	printlnFn("Deposited. New balance:", formatCents(result.NewBalance))
}

// Transactions prints an account's ledger entries, newest first.
func (a *App) Transactions(ctx context.Context) {
	accountID, err := GetSimpleText(a.reader, "Account id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	txns, err := a.api.Transactions(ctx, accountID)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if len(txns) == 0 {
		printlnFn("No transactions.")
		return
	}

	for _, t := range txns {
		printlnFn(fmt.Sprintf("%s  %-8s  %-10s  %s  %s",
			t.CreatedAt.Format("2006-01-02 15:04:05"), t.Type, t.Status, formatCents(t.Amount), t.Description))
	}
}
