// Package httpapi exposes the procedure endpoints over HTTP/JSON. It is a
// thin orchestration layer: request decoding, the per-call authentication
// gate, and mapping service errors to stable wire codes.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bankd/internal/logging"
	"github.com/dmitrijs2005/bankd/internal/server/config"
	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Service interfaces consumed by the handlers; the concrete implementations
// live in the services package. Kept narrow so tests can substitute fakes.
type userSvc interface {
	Signup(ctx context.Context, params services.SignupParams) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) services.LogoutResult
}

type sessionSvc interface {
	Validate(ctx context.Context, token string) services.SessionResult
}

type ledgerSvc interface {
	CreateAccount(ctx context.Context, userID, accountType string) (*models.Account, error)
	GetAccounts(ctx context.Context, userID string) ([]*models.Account, error)
	FundAccount(ctx context.Context, userID, accountID string, amount int64, source services.FundingSource) (*services.FundResult, error)
	GetTransactions(ctx context.Context, userID, accountID string) ([]*models.Transaction, error)
}

// Server hosts the HTTP procedure endpoints.
type Server struct {
	address      string
	logger       logging.Logger
	users        userSvc
	sessions     sessionSvc
	ledger       ledgerSvc
	db           *sql.DB
	cookieMaxAge int
}

// NewServer constructs a Server bound to the given services.
func NewServer(cfg *config.Config, l logging.Logger, us userSvc, ss sessionSvc, ls ledgerSvc, db *sql.DB) *Server {
	return &Server{
		address:      cfg.EndpointAddr,
		logger:       l.With("module", "http_server"),
		users:        us,
		sessions:     ss,
		ledger:       ls,
		db:           db,
		cookieMaxAge: int(cfg.SessionValidityDuration.Seconds()),
	}
}

// Router assembles the procedure routes. Protected routes sit behind the
// authentication gate; public ones do not resolve an identity at all.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleMe)
			r.Post("/accounts", s.handleCreateAccount)
			r.Get("/accounts", s.handleGetAccounts)
			r.Post("/accounts/fund", s.handleFundAccount)
			r.Get("/accounts/{accountID}/transactions", s.handleGetTransactions)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
