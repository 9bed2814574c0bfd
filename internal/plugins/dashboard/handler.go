package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// Handler handles HTTP requests for the role-based dashboards.
type Handler struct {
	service DashboardService
}

// NewHandler creates a new dashboard handler.
func NewHandler(service DashboardService) *Handler {
	return &Handler{service: service}
}

// Parent renders the parent dashboard (GET /dashboard). Trainers landing
// here are sent to their own dashboard instead of an error page.
func (h *Handler) Parent(c echo.Context) error {
	session := auth.GetSession(c)
	if session.Role == auth.RoleTrainer {
		return c.Redirect(http.StatusSeeOther, "/trainer/dashboard")
	}
	summary, err := h.service.ParentSummary(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.ParentDashboard(pages.ParentDashboardData{
		Name:             session.Name,
		PlayerCount:      summary.PlayerCount,
		UpcomingSessions: summary.UpcomingSessions,
	}))
}

// Trainer renders the trainer dashboard (GET /trainer/dashboard). Parents
// landing here are sent to their own dashboard instead of an error page.
func (h *Handler) Trainer(c echo.Context) error {
	session := auth.GetSession(c)
	if session.Role != auth.RoleTrainer {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	summary, err := h.service.TrainerSummary(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.TrainerDashboard(pages.TrainerDashboardData{
		Name:             session.Name,
		PendingRequests:  summary.PendingRequests,
		UpcomingSessions: summary.UpcomingSessions,
	}))
}
