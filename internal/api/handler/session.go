package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session credential cookie carrying the bearer token.
const CookieName = "authToken"

// SessionBinder writes and clears the HTTP-level session credential. The
// cookie mirrors the token: http-only, lax same-site, lifetime equal to the
// token TTL. Secure is set outside development since the dev frontend runs
// over plain HTTP.
type SessionBinder struct {
	ttl    time.Duration
	secure bool
}

func NewSessionBinder(ttl time.Duration, secure bool) *SessionBinder {
	return &SessionBinder{ttl: ttl, secure: secure}
}

func (b *SessionBinder) Bind(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(b.ttl.Seconds()),
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie. The token itself stays valid until its natural
// expiry; the service keeps no revocation list.
func (b *SessionBinder) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ExtractToken pulls the bearer token from the request: cookie first, then
// the Authorization header.
func ExtractToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
