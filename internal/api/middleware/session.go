package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// SessionCookie is the httpOnly cookie carrying the opaque session id.
const SessionCookie = "sessionId"

const (
	userKey      = "user"
	sessionIDKey = "sessionId"
)

// Session resolves the session cookie to a user and stores both in the
// request context. Requests without a cookie, or with a cookie that no
// longer resolves, proceed anonymously; routes decide whether anonymity is
// permitted. The stale cookie itself is left alone, it is harmless and
// resolves to absent on every request.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if user != nil {
				c.Set(userKey, user)
				c.Set(sessionIDKey, cookie.Value)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}

// SessionID returns the resolved session id for this request, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}
