package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bankd/internal/common"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// SignupParams carries the profile fields collected at registration.
type SignupParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
	SSN         string
	Address     string
	City        string
	State       string
	ZipCode     string
}

// LogoutResult distinguishes "nothing to revoke" from "a session row was
// deleted". Success is false only when a deletion attempt itself failed.
type LogoutResult struct {
	Success bool
	Revoked bool
}

// UserService handles registration, credential verification, and the
// login/logout orchestration over SessionService.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *UserService {
	return &UserService{db: db, repomanager: m, sessions: sessions}
}

// Signup creates a user and an initial session. A taken email yields
// common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, params SignupParams) (*models.User, string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: string(passwordHash),
		SSNHash:      hashSSN(params.SSN),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhoneNumber:  params.PhoneNumber,
		DateOfBirth:  params.DateOfBirth,
		Address:      params.Address,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credential and rotates the session: all prior sessions
// for the user are revoked, then a fresh one is issued, so at most one active
// session exists per user. Wrong email and wrong password produce the same
// error to avoid account enumeration.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	s.sessions.SweepExpired(ctx, user.ID)

	if err := s.sessions.RevokeAll(ctx, user.ID); err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Logout revokes the session behind token. An empty token (no active session)
// is a successful no-op.
func (s *UserService) Logout(ctx context.Context, token string) LogoutResult {
	if token == "" {
		return LogoutResult{Success: true}
	}

	revoked, err := s.sessions.Revoke(ctx, token)
	if err != nil {
		return LogoutResult{Success: false}
	}

	return LogoutResult{Success: true, Revoked: revoked}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashSSN stores a one-way digest so the raw SSN never persists.
func hashSSN(ssn string) string {
	sum := sha256.Sum256([]byte(ssn))
	return hex.EncodeToString(sum[:])
}
