package account

import (
	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// RegisterRoutes sets up the account page routes. Both roles share the page.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/account", auth.RequireAuth(authService))
	g.GET("", h.Show)
	g.POST("/password", h.ChangePassword)
}
