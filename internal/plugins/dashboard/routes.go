package dashboard

import (
	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// RegisterRoutes sets up the dashboard routes. These paths are the default
// post-login destinations, so they must match what the auth plugin redirects
// to. Role gating is done in the handlers: a visitor on the other role's
// dashboard is redirected to their own rather than shown an error.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	e.GET("/dashboard", h.Parent, auth.RequireAuth(authService))
	e.GET("/trainer/dashboard", h.Trainer, auth.RequireAuth(authService))
}
