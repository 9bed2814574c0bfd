package auth

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/apperror"
)

// Context keys for storing session data in Echo context. Other plugins
// use these keys (via the exported getter functions below) to access
// the authenticated user's information.
const (
	contextKeySession = "auth_session"
	contextKeyUserID  = "auth_user_id"
)

// RequireAuth returns middleware that validates the session cookie and
// injects session data into the request context. Unauthenticated visitors
// are redirected to the login page with redirect_to set to the page they
// asked for, so login lands them back where they started.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionToken(c)
			if token == "" {
				return redirectToLogin(c)
			}

			session, err := service.ValidateSession(c.Request().Context(), token)
			if err != nil {
				// Invalid or expired session -- clear the stale cookie.
				clearSessionCookie(c)
				return redirectToLogin(c)
			}

			WithSession(c, session)

			return next(c)
		}
	}
}

// RequireRole returns middleware that rejects authenticated users whose
// session role does not match. Must run after RequireAuth.
func RequireRole(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if session == nil || session.Role != role {
				return apperror.NewForbidden("insufficient permissions")
			}
			return next(c)
		}
	}
}

// redirectToLogin sends the browser to the login page, carrying the
// originally requested path so it can be resumed after authentication.
func redirectToLogin(c echo.Context) error {
	target := "/login"
	if uri := c.Request().RequestURI; uri != "" && uri != "/" {
		target += "?" + url.Values{paramRedirectTo: {uri}}.Encode()
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// WithSession stores session data in the Echo context for downstream
// handlers. Called by RequireAuth; also useful for handler tests.
func WithSession(c echo.Context, session *Session) {
	c.Set(contextKeySession, session)
	c.Set(contextKeyUserID, session.UserID)
}

// --- Exported getters for other plugins ---

// GetSession retrieves the authenticated session from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetSession(c echo.Context) *Session {
	session, ok := c.Get(contextKeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}

// GetRole retrieves the authenticated user's role from the Echo context.
// Returns RoleNone if the request is not authenticated.
func GetRole(c echo.Context) Role {
	session := GetSession(c)
	if session == nil {
		return RoleNone
	}
	return session.Role
}
