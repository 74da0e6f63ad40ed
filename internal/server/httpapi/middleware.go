package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/services"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// requireAuth is the authentication gate for protected procedures. It
// resolves the token from the carrier and branches on the validation result:
// a valid session injects the user into context, an early-expiry rejection
// clears the cookie and reports the expiry, anything else is a bare 401 with
// no further detail (so callers cannot probe whether a token ever existed).
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		carrier := newCarrier(w, r)

		result := s.sessions.Validate(r.Context(), carrier.Token())

		switch result.Status {
		case services.SessionValid:
			ctx := context.WithValue(r.Context(), userContextKey, result.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		case services.SessionExpired:
			carrier.ClearToken()
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Session expired")
		default:
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
		}
	})
}
