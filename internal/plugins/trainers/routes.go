package trainers

import (
	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// RegisterRoutes sets up trainer routes. The directory and detail pages are
// public; profile management requires a trainer session.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	e.GET("/trainers", h.Directory)
	e.GET("/trainers/:id", h.Detail)

	g := e.Group("/trainer", auth.RequireAuth(authService), auth.RequireRole(auth.RoleTrainer))
	g.GET("/profile", h.EditProfile)
	g.POST("/profile", h.UpdateProfile)
}
