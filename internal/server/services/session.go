// Package services contains server-side business logic. This file implements
// SessionService, the sole authority on "who is the caller": it issues,
// validates, and revokes the bearer session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/bankd/internal/common"
	"github.com/dmitrijs2005/bankd/internal/logging"
	"github.com/dmitrijs2005/bankd/internal/server/auth"
	"github.com/dmitrijs2005/bankd/internal/server/config"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/repomanager"
)

// SessionStatus enumerates the outcomes of validating a token.
type SessionStatus int

const (
	// SessionAnonymous means no usable session: missing, unknown, malformed,
	// or strictly expired token. Never an error.
	SessionAnonymous SessionStatus = iota
	// SessionExpired means the session was found but rejected (and deleted)
	// because it was inside the early-expiry window.
	SessionExpired
	// SessionValid means the token authenticates User.
	SessionValid
)

// SessionResult is the outcome of Validate. Callers branch on Status;
// User is set only for SessionValid.
type SessionResult struct {
	Status SessionStatus
	User   *models.User
}

// SessionService manages the session lifecycle. Validation deliberately fails
// open to anonymous on store errors so a transient store hiccup does not turn
// every request into a server error.
type SessionService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	logger            logging.Logger
	jwtSecret         []byte
	validityDuration  time.Duration
	earlyExpiryWindow time.Duration
}

// NewSessionService constructs a SessionService using repositories and server
// config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *SessionService {
	return &SessionService{
		db:                db,
		repomanager:       m,
		logger:            l.With("module", "session_service"),
		jwtSecret:         []byte(cfg.SecretKey),
		validityDuration:  cfg.SessionValidityDuration,
		earlyExpiryWindow: cfg.SessionEarlyExpiryWindow,
	}
}

// Issue mints a signed token for userID and persists the session row.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.validityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Create(ctx, userID, token, time.Now().Add(s.validityDuration)); err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Validate resolves a raw token to an identity.
//
// Policy, evaluated in order:
//  1. empty/malformed/unverifiable token -> Anonymous
//  2. no matching session row            -> Anonymous
//  3. expiry within the early window     -> delete the row, Expired
//  4. unexpired                          -> Valid(owning user)
//  5. strictly expired outside the window -> Anonymous (row left for sweep)
//
// The signature check makes a forged token cheap to reject; the store lookup
// makes a signed-but-revoked token fail. Store failures resolve to Anonymous.
func (s *SessionService) Validate(ctx context.Context, token string) SessionResult {
	if token == "" {
		return SessionResult{Status: SessionAnonymous}
	}

	signedUserID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return SessionResult{Status: SessionAnonymous}
	}

	repo := s.repomanager.Sessions(s.db)

	session, err := repo.Find(ctx, token)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "session lookup failed, treating as anonymous", "error", err.Error())
		}
		return SessionResult{Status: SessionAnonymous}
	}

	if session.UserID != signedUserID {
		return SessionResult{Status: SessionAnonymous}
	}

	now := time.Now()

	if session.ExpiresAt.Sub(now) <= s.earlyExpiryWindow {
		if session.ExpiresAt.After(now) {
			// Still technically valid but would lapse mid-request: reject it
			// now and remove the row so the next attempt sees nothing.
			if _, err := repo.Delete(ctx, token); err != nil {
				s.logger.Warn(ctx, "failed to delete near-expiry session", "error", err.Error())
			}
			return SessionResult{Status: SessionExpired}
		}
		// Strictly expired: no authenticated access, row left for later sweep.
		return SessionResult{Status: SessionAnonymous}
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "user lookup failed, treating as anonymous", "error", err.Error())
		}
		return SessionResult{Status: SessionAnonymous}
	}

	return SessionResult{Status: SessionValid, User: user}
}

// Revoke deletes one session row. Idempotent; reports whether a row existed.
func (s *SessionService) Revoke(ctx context.Context, token string) (bool, error) {
	return s.repomanager.Sessions(s.db).Delete(ctx, token)
}

// RevokeAll deletes every session row for the user. Used at login to enforce
// the single-active-session policy.
func (s *SessionService) RevokeAll(ctx context.Context, userID string) error {
	return s.repomanager.Sessions(s.db).DeleteAllForUser(ctx, userID)
}

// SweepExpired removes the user's strictly-expired session rows that
// validation leaves behind. Best effort.
func (s *SessionService) SweepExpired(ctx context.Context, userID string) {
	if err := s.repomanager.Sessions(s.db).DeleteExpiredForUser(ctx, userID, time.Now()); err != nil {
		s.logger.Warn(ctx, "expired session sweep failed", "error", err.Error())
	}
}
