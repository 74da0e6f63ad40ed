// Package api implements the HTTP client for the bankd procedure endpoints.
// The session cookie set at signup/login is kept in an in-process cookie jar
// and sent automatically on subsequent calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Client talks to a bankd server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// Error is a typed API failure with the server's stable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Wire types mirrored from the server DTOs.

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Account struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       int64  `json:"balance"`
	Status        string `json:"status"`
}

type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AccountType string    `json:"accountType"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

type FundingSource struct {
	Type          string `json:"type"`
	CardNumber    string `json:"cardNumber,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
}

type FundResult struct {
	TransactionID string `json:"transactionId"`
	NewBalance    int64  `json:"newBalance"`
}

// Signup registers a new user; the session cookie lands in the jar.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the fresh session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout revokes the current session. Reports whether a session row was
// actually deleted server-side.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
		Revoked bool `json:"revoked"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/logout", nil, &resp); err != nil {
		return false, err
	}
	return resp.Revoked, nil
}

// CreateAccount opens an account of the given type.
func (c *Client) CreateAccount(ctx context.Context, accountType string) (*Account, error) {
	body := map[string]string{"accountType": accountType}
	var resp struct {
		Account Account `json:"account"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/accounts", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// Accounts lists the caller's accounts.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Fund deposits amount (integer cents) into the account.
func (c *Client) Fund(ctx context.Context, accountID string, amount int64, source FundingSource) (*FundResult, error) {
	body := map[string]any{
		"accountId":     accountID,
		"amount":        amount,
		"fundingSource": source,
	}
	resp := &FundResult{}
	if err := c.call(ctx, http.MethodPost, "/api/accounts/fund", body, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Transactions lists the account's ledger entries, newest first.
func (c *Client) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	var resp struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/accounts/"+accountID+"/transactions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
