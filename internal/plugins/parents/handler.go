package parents

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// CacheClearer drops a user's cached dashboard entries after player changes.
type CacheClearer interface {
	ClearUserCache(ctx context.Context, userID string) error
}

// Handler handles HTTP requests for household player management.
type Handler struct {
	service ParentService
	caches  CacheClearer
}

// NewHandler creates a new parents handler. caches may be nil in tests.
func NewHandler(service ParentService, caches CacheClearer) *Handler {
	return &Handler{service: service, caches: caches}
}

// Players renders the player management page (GET /players).
func (h *Handler) Players(c echo.Context) error {
	players, err := h.service.ListPlayers(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.PlayersPage(pages.PlayersData{
		CSRFToken: middleware.GetCSRFToken(c),
		Players:   toPlayerRows(players),
	}))
}

// AddPlayer registers a new player (POST /players).
func (h *Handler) AddPlayer(c echo.Context) error {
	var req AddPlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	userID := auth.GetUserID(c)
	if _, err := h.service.AddPlayer(c.Request().Context(), userID, req); err != nil {
		return err
	}
	h.clearCache(c, userID)

	return c.Redirect(http.StatusSeeOther, "/players")
}

// RemovePlayer deletes a player (POST /players/:id/delete).
func (h *Handler) RemovePlayer(c echo.Context) error {
	userID := auth.GetUserID(c)
	if err := h.service.RemovePlayer(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	h.clearCache(c, userID)

	return c.Redirect(http.StatusSeeOther, "/players")
}

// clearCache invalidates the user's dashboard cache, best-effort.
func (h *Handler) clearCache(c echo.Context, userID string) {
	if h.caches == nil {
		return
	}
	if err := h.caches.ClearUserCache(c.Request().Context(), userID); err != nil {
		slog.Warn("clearing dashboard cache", slog.Any("error", err))
	}
}

func toPlayerRows(players []Player) []pages.PlayerRow {
	rows := make([]pages.PlayerRow, len(players))
	for i, p := range players {
		rows[i] = pages.PlayerRow{
			ID:        p.ID,
			FirstName: p.FirstName,
			BirthYear: p.BirthYear,
			Sport:     p.Sport,
		}
	}
	return rows
}
