package bookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// CacheClearer drops a user's cached dashboard entries after booking changes.
type CacheClearer interface {
	ClearUserCache(ctx context.Context, userID string) error
}

// Handler handles HTTP requests for booking pages and transitions.
type Handler struct {
	service BookingService
	caches  CacheClearer
}

// NewHandler creates a new bookings handler. caches may be nil in tests.
func NewHandler(service BookingService, caches CacheClearer) *Handler {
	return &Handler{service: service, caches: caches}
}

// List renders the caller's schedule (GET /bookings). Parents see their
// players' sessions, trainers see their own.
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.GetUserID(c)

	var (
		details []BookingDetail
		err     error
	)
	isTrainer := auth.GetRole(c) == auth.RoleTrainer
	if isTrainer {
		details, err = h.service.ListForTrainerUser(ctx, userID)
	} else {
		details, err = h.service.ListForParentUser(ctx, userID)
	}
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.BookingsPage(pages.BookingsData{
		CSRFToken: middleware.GetCSRFToken(c),
		IsTrainer: isTrainer,
		Bookings:  toBookingRows(details),
	}))
}

// Create requests a new session (POST /bookings, parents only).
func (h *Handler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	userID := auth.GetUserID(c)
	if _, err := h.service.Request(c.Request().Context(), userID, req); err != nil {
		return err
	}
	h.clearCache(c, userID)

	return c.Redirect(http.StatusSeeOther, "/bookings")
}

// Confirm accepts a pending request (POST /bookings/:id/confirm, trainers only).
func (h *Handler) Confirm(c echo.Context) error {
	return h.transition(c, h.service.Confirm)
}

// Decline rejects a pending request (POST /bookings/:id/decline, trainers only).
func (h *Handler) Decline(c echo.Context) error {
	return h.transition(c, h.service.Decline)
}

// Complete marks a finished session (POST /bookings/:id/complete, trainers only).
func (h *Handler) Complete(c echo.Context) error {
	return h.transition(c, h.service.Complete)
}

// Cancel withdraws a session (POST /bookings/:id/cancel, parents only).
func (h *Handler) Cancel(c echo.Context) error {
	return h.transition(c, h.service.CancelAsParent)
}

func (h *Handler) transition(c echo.Context, fn func(ctx context.Context, userID, bookingID string) error) error {
	userID := auth.GetUserID(c)
	if err := fn(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	h.clearCache(c, userID)

	return c.Redirect(http.StatusSeeOther, "/bookings")
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

func toBookingRows(details []BookingDetail) []pages.BookingRow {
	rows := make([]pages.BookingRow, len(details))
	for i, d := range details {
		rows[i] = pages.BookingRow{
			ID:          d.ID,
			TrainerName: d.TrainerName,
			PlayerName:  d.PlayerName,
			Sport:       d.Sport,
			StartsAt:    d.StartsAt,
			EndsAt:      d.EndsAt,
			Status:      d.Status,
			Location:    d.Location,
		}
	}
	return rows
}
