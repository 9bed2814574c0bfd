// Package account owns the signed-in user's account page: profile details,
// password changes, and the recent sign-in activity panel.
package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/apperror"
	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// ChangePasswordRequest holds the data submitted by the password form.
type ChangePasswordRequest struct {
	Current string `form:"current_password"`
	New     string `form:"new_password"`
	Confirm string `form:"confirm_password"`
}

// ActivitySource supplies the recent sign-in events shown on the page.
// Implemented by the audit plugin.
type ActivitySource interface {
	RecentActivity(ctx context.Context, userID string) ([]ActivityEntry, error)
}

// ActivityEntry is one row in the recent-activity panel.
type ActivityEntry struct {
	Event    string
	ClientIP string
	When     string
}

// Handler handles HTTP requests for the account page.
type Handler struct {
	auth     auth.AuthService
	activity ActivitySource
}

// NewHandler creates a new account handler. activity may be nil in tests.
func NewHandler(authService auth.AuthService, activity ActivitySource) *Handler {
	return &Handler{auth: authService, activity: activity}
}

// Show renders the account page (GET /account).
func (h *Handler) Show(c echo.Context) error {
	session := auth.GetSession(c)

	var entries []ActivityEntry
	if h.activity != nil {
		var err error
		entries, err = h.activity.RecentActivity(c.Request().Context(), session.UserID)
		if err != nil {
			// The panel is informational; render the page without it.
			slog.Warn("loading recent activity", slog.Any("error", err))
			entries = nil
		}
	}

	return middleware.Render(c, http.StatusOK, pages.AccountPage(pages.AccountData{
		CSRFToken: middleware.GetCSRFToken(c),
		Name:      session.Name,
		Email:     session.Email,
		Role:      string(session.Role),
		Activity:  toActivityRows(entries),
	}))
}

// ChangePassword processes the password form (POST /account/password).
// On success the current session is destroyed and the user re-authenticates
// with the new credential; the login page announces the change.
func (h *Handler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if req.New == "" || len(req.New) < 8 {
		return apperror.NewValidation("new password must be at least 8 characters")
	}
	if len(req.New) > 128 {
		return apperror.NewValidation("new password must be at most 128 characters")
	}
	if req.New != req.Confirm {
		return apperror.NewValidation("passwords do not match")
	}

	ctx := c.Request().Context()
	session := auth.GetSession(c)

	if err := h.auth.ChangePassword(ctx, session.UserID, req.Current, req.New); err != nil {
		return err
	}

	// The old session is bound to the old credential; end it.
	if token := sessionToken(c); token != "" {
		if err := h.auth.DestroySession(ctx, token); err != nil {
			slog.Warn("destroying session after password change", slog.Any("error", err))
		}
	}
	clearSessionCookie(c)

	return c.Redirect(http.StatusSeeOther, "/login?password=changed")
}

// sessionToken reads the session cookie value, or "".
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie("courtside_session")
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// clearSessionCookie removes the session cookie.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     "courtside_session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func toActivityRows(entries []ActivityEntry) []pages.ActivityRow {
	rows := make([]pages.ActivityRow, len(entries))
	for i, e := range entries {
		rows[i] = pages.ActivityRow{
			Event:    e.Event,
			ClientIP: e.ClientIP,
			When:     e.When,
		}
	}
	return rows
}
