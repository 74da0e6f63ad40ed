package httpapi

import "net/http"

// SessionCookieName is the single cookie carrying the session token.
const SessionCookieName = "session"

// TokenCarrier normalizes how a transport carries the session token, so the
// handlers never touch transport specifics directly. httpCarrier is the one
// adapter today; another transport would implement the same three methods.
type TokenCarrier interface {
	// Token returns the raw token from the request, or "" when absent.
	Token() string
	// SetToken attaches the token to the response with the given lifetime in
	// seconds.
	SetToken(token string, maxAge int)
	// ClearToken expires the token on the client (Max-Age=0).
	ClearToken()
}

type httpCarrier struct {
	w http.ResponseWriter
	r *http.Request
}

func newCarrier(w http.ResponseWriter, r *http.Request) TokenCarrier {
	return &httpCarrier{w: w, r: r}
}

func (c *httpCarrier) Token() string {
	cookie, err := c.r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c *httpCarrier) SetToken(token string, maxAge int) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

func (c *httpCarrier) ClearToken() {
	// MaxAge < 0 serializes as Max-Age=0, deleting the cookie.
	http.SetCookie(c.w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
