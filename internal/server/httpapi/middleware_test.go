package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/bankd/internal/server/models"
	"github.com/dmitrijs2005/bankd/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateRequest(t *testing.T, sessions *fakeSessionSvc, cookie *http.Cookie) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	srv := newTestServer(&fakeUserSvc{}, sessions, &fakeLedgerSvc{})

	var seen *models.User
	handler := srv.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuth_ValidSessionInjectsUser(t *testing.T) {
	sessions := authenticatedSessions()

	rec, seen := gateRequest(t, sessions, &http.Cookie{Name: SessionCookieName, Value: "tok-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", sessions.token)
	require.NotNil(t, seen)
	assert.Equal(t, "u-1", seen.ID)
}

func TestRequireAuth_ExpiredSessionClearsCookie(t *testing.T) {
	sessions := &fakeSessionSvc{result: services.SessionResult{Status: services.SessionExpired}}

	rec, seen := gateRequest(t, sessions, &http.Cookie{Name: SessionCookieName, Value: "tok-1"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired")
	assert.Nil(t, seen)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "expired session must clear the cookie")
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestRequireAuth_AnonymousIsBare401(t *testing.T) {
	sessions := &fakeSessionSvc{result: services.SessionResult{Status: services.SessionAnonymous}}

	rec, seen := gateRequest(t, sessions, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
	assert.Nil(t, seen)
	assert.Nil(t, sessionCookie(t, rec), "anonymous requests leave cookies alone")
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, UserFromContext(req.Context()))
}
