package trainers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// Handler handles HTTP requests for the trainer directory and profile pages.
type Handler struct {
	service TrainerService
}

// NewHandler creates a new trainers handler.
func NewHandler(service TrainerService) *Handler {
	return &Handler{service: service}
}

// Directory renders the public trainer listing (GET /trainers).
func (h *Handler) Directory(c echo.Context) error {
	sport := c.QueryParam("sport")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	maxRate, _ := strconv.Atoi(c.QueryParam("max_rate"))

	trainers, total, err := h.service.Search(c.Request().Context(), sport, maxRate*100, page)
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.TrainerDirectory(pages.TrainerDirectoryData{
		Trainers: toCards(trainers),
		Total:    total,
		Sport:    sport,
		Sports:   Sports,
		Page:     max(page, 1),
	}))
}

// Detail renders one trainer's public profile (GET /trainers/:id).
func (h *Handler) Detail(c echo.Context) error {
	trainer, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	card := toCard(trainer)
	return middleware.Render(c, http.StatusOK, pages.TrainerDetail(pages.TrainerDetailData{
		Trainer:   card,
		CanBook:   auth.GetRole(c) == auth.RoleParent,
		CSRFToken: middleware.GetCSRFToken(c),
	}))
}

// EditProfile renders the trainer's own profile form (GET /trainer/profile).
func (h *Handler) EditProfile(c echo.Context) error {
	trainer, err := h.service.GetByUserID(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return middleware.Render(c, http.StatusOK, pages.TrainerProfileForm(pages.TrainerProfileFormData{
		CSRFToken: middleware.GetCSRFToken(c),
		Trainer:   toCard(trainer),
		Sports:    Sports,
	}))
}

// UpdateProfile saves profile edits (POST /trainer/profile).
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	if _, err := h.service.UpdateProfile(c.Request().Context(), auth.GetUserID(c), req); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/trainer/profile")
}

// toCard converts a Trainer to its template representation.
func toCard(t *Trainer) pages.TrainerCard {
	return pages.TrainerCard{
		ID:          t.ID,
		DisplayName: t.DisplayName,
		Sport:       t.Sport,
		HourlyRate:  formatRate(t.HourlyRateCents),
		BioHTML:     t.Bio,
		IsVerified:  t.IsVerified,
	}
}

func toCards(trainers []Trainer) []pages.TrainerCard {
	cards := make([]pages.TrainerCard, len(trainers))
	for i := range trainers {
		cards[i] = toCard(&trainers[i])
	}
	return cards
}

// formatRate renders cents as a dollar string ("$45/h").
func formatRate(cents int) string {
	if cents%100 == 0 {
		return "$" + strconv.Itoa(cents/100) + "/h"
	}
	return "$" + strconv.Itoa(cents/100) + "." + pad2(cents%100) + "/h"
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
