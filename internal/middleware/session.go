package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
)

// sessionKey is the echo context key the decoded session is stored
// under for handlers and views.
const sessionKey = "session"

// SessionFrom returns the session loaded for the current request, or
// nil when the request is anonymous.
func SessionFrom(c echo.Context) *auth.Session {
	s, _ := c.Get(sessionKey).(*auth.Session)
	return s
}

// LoadSession validates the session cookie on every request and, when
// valid, renews it and stores the decoded session in the context so
// views can show login state. It never blocks a request: an absent or
// invalid cookie just leaves the request anonymous (the stale cookie
// is cleared).
func LoadSession(b *auth.Binder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(b.CookieName())
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sess, err := b.Validate(cookie.Value)
			if err != nil {
				c.SetCookie(b.ExpiredCookie())
				return next(c)
			}
			// Sliding renewal: push the idle deadline out on activity.
			// The absolute expiry embedded in the token is untouched.
			if token, err := b.Renew(sess); err == nil {
				c.SetCookie(b.Cookie(token))
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireLogin guards protected routes. It runs after LoadSession and
// redirects anonymous requests to the login page before the handler
// can perform any side effect.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c) == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}
