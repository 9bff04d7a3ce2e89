package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timekeep/timer-system/internal/api/metrics"
	"github.com/timekeep/timer-system/internal/api/middleware"
	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// TokenCookie carries the opaque bearer token. Deliberately NOT httpOnly:
// client script must read it to attach it to the WebSocket handshake, since
// the browser WebSocket constructor cannot set custom headers.
const TokenCookie = "token"

// AuthHandler implements the browser-facing identity flows: the landing
// page, login, signup, and logout. Failures surface as redirects with a
// query flag, never as HTTP error statuses; the page renders the banner.
type AuthHandler struct {
	auth         ports.AuthService
	tokens       ports.TokenManager
	cookieSecure bool
}

func NewAuthHandler(auth ports.AuthService, tokens ports.TokenManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cookieSecure: cookieSecure}
}

// Index renders the landing page. For an authenticated user it re-surfaces
// the current bearer token so the page script can open the socket.
func (h *AuthHandler) Index(c echo.Context) error {
	data := indexData{}

	if user := middleware.CurrentUser(c); user != nil {
		token, err := h.tokens.TokenForUser(c.Request().Context(), user.ID)
		if err != nil {
			return err
		}
		data.User = user
		data.UserToken = token
	}

	if flag := c.QueryParam("authError"); flag == "true" {
		data.AuthError = "Wrong username or password"
	} else {
		data.AuthError = flag
	}

	return c.Render(http.StatusOK, "index.html", data)
}

// Login authenticates a username/password pair and issues both credentials.
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusFound, "/?authError=true")
	}

	creds, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Redirect(http.StatusFound, "/?authError=true")
	}
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, creds.SessionID, creds.Token)
	return c.Redirect(http.StatusFound, "/")
}

// Signup creates the account and logs it in immediately: same cookie and
// redirect behavior as Login.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusFound, "/?authError=true")
	}
	if err := c.Validate(&form); err != nil {
		return c.Redirect(http.StatusFound, "/?authError=true")
	}

	creds, err := h.auth.Signup(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrInvalidCredentials) {
		return c.Redirect(http.StatusFound, "/?authError=true")
	}
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	h.setAuthCookies(c, creds.SessionID, creds.Token)
	return c.Redirect(http.StatusFound, "/")
}

// Logout revokes the session and the token named by the token cookie, then
// clears both cookies. Anonymous requests just bounce home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if middleware.CurrentUser(c) == nil {
		return c.Redirect(http.StatusFound, "/")
	}

	var token string
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		token = cookie.Value
	}

	if err := h.auth.Logout(c.Request().Context(), middleware.SessionID(c), token); err != nil {
		return err
	}

	h.clearAuthCookies(c)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setAuthCookies(c echo.Context, sessionID, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	c.SetCookie(&http.Cookie{
		Name:   TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
