package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/plugins/account"
	"github.com/courtside-app/courtside/internal/plugins/audit"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/plugins/bookings"
	"github.com/courtside-app/courtside/internal/plugins/dashboard"
	"github.com/courtside-app/courtside/internal/plugins/parents"
	"github.com/courtside-app/courtside/internal/plugins/trainers"
	"github.com/courtside-app/courtside/internal/templates/layouts"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// RegisterRoutes constructs every plugin's repository/service/handler stack,
// connects them through the adapters in wiring.go, and registers all routes.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its wiring and routes go here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Repositories ---
	userRepo := auth.NewUserRepository(a.DB)
	trainerRepo := trainers.NewTrainerRepository(a.DB)
	parentRepo := parents.NewParentRepository(a.DB)
	bookingRepo := bookings.NewBookingRepository(a.DB)
	auditRepo := audit.NewAuditRepository(a.DB)

	// --- Services ---
	trainerService := trainers.NewTrainerService(trainerRepo)
	parentService := parents.NewParentService(parentRepo, trainers.ValidSport)
	auditService := audit.NewAuditService(auditRepo)

	authService := auth.NewAuthService(
		userRepo,
		a.Redis,
		&roleResolver{trainers: trainerRepo},
		parentService,
		a.Config.Auth.SessionTTL,
		a.Config.Auth.RememberTTL,
		a.Config.Auth.NonceTTL,
	)

	bookingService := bookings.NewBookingService(
		bookingRepo,
		&playerGuard{parents: parentRepo},
		&trainerDirectory{trainers: trainerRepo},
		&parentResolver{parents: parentRepo},
	)

	dashboardService := dashboard.NewDashboardService(
		a.Redis,
		&parentStats{parents: parentRepo, bookings: bookingRepo},
		&trainerStats{trainers: trainerRepo, bookings: bookingRepo},
	)

	lockout := auth.NewLockout(a.Redis, a.Config.Auth.LockoutThreshold, a.Config.Auth.LockoutWindow)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, lockout, dashboardService, auditService, a.Config.BaseOrigin())
	trainerHandler := trainers.NewHandler(trainerService)
	parentHandler := parents.NewHandler(parentService, dashboardService)
	bookingHandler := bookings.NewHandler(bookingService, dashboardService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	accountHandler := account.NewHandler(authService, &activityFeed{audit: auditService})

	// Copy session data from the Echo context into the Go context on every
	// render, so layouts can show the right nav without importing plugins.
	middleware.LayoutInjector = layoutInjector

	// --- Public routes ---

	e.GET("/", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.Landing())
	})

	// Health check endpoint for container orchestration.
	e.GET("/healthz", a.healthz)

	// --- Plugin routes ---
	auth.RegisterRoutes(e, authHandler)
	trainers.RegisterRoutes(e, trainerHandler, authService)
	parents.RegisterRoutes(e, parentHandler, authService)
	bookings.RegisterRoutes(e, bookingHandler, authService)
	dashboard.RegisterRoutes(e, dashboardHandler, authService)
	account.RegisterRoutes(e, accountHandler, authService)
}

// layoutInjector copies session and request data into the render context.
func layoutInjector(c echo.Context, ctx context.Context) context.Context {
	if session := auth.GetSession(c); session != nil {
		ctx = layouts.SetIsAuthenticated(ctx, true)
		ctx = layouts.SetUserID(ctx, session.UserID)
		ctx = layouts.SetUserName(ctx, session.Name)
		ctx = layouts.SetUserEmail(ctx, session.Email)
		ctx = layouts.SetUserRole(ctx, string(session.Role))
	}
	ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
	ctx = layouts.SetActivePath(ctx, c.Request().URL.Path)
	return ctx
}

// healthz reports whether the server can reach its backing stores.
func (a *App) healthz(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": err.Error()})
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
