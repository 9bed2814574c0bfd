package bookings

import (
	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// RegisterRoutes sets up booking routes. Listing is shared by both roles;
// creation and cancellation are parent actions, confirmation and completion
// are trainer actions.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/bookings", auth.RequireAuth(authService))
	g.GET("", h.List)

	g.POST("", h.Create, auth.RequireRole(auth.RoleParent))
	g.POST("/:id/cancel", h.Cancel, auth.RequireRole(auth.RoleParent))

	g.POST("/:id/confirm", h.Confirm, auth.RequireRole(auth.RoleTrainer))
	g.POST("/:id/decline", h.Decline, auth.RequireRole(auth.RoleTrainer))
	g.POST("/:id/complete", h.Complete, auth.RequireRole(auth.RoleTrainer))
}
