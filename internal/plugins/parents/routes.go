package parents

import (
	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// RegisterRoutes sets up player management routes. All of them require a
// parent session; trainers have no household to manage.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/players", auth.RequireAuth(authService), auth.RequireRole(auth.RoleParent))
	g.GET("", h.Players)
	g.POST("", h.AddPlayer)
	g.POST("/:id/delete", h.RemovePlayer)
}
