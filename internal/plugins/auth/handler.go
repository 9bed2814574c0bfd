package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/apperror"
	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/templates/pages"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "courtside_session"

// Query and form parameter names on the login/logout pages. The underscored
// nonce field is kept verbatim for drop-in compatibility with links minted
// by the previous site.
const (
	paramRedirectTo = "redirect_to"
	paramError      = "error"
	paramLogin      = "login"
	paramConfirm    = "confirm"
	paramNonce      = "_wpnonce"
)

// postLogoutTarget is the default destination after a confirmed logout.
const postLogoutTarget = "/login?logged_out=1"

// CacheClearer drops account-scoped cached entries (dashboard summaries,
// notification counts). Implemented by the dashboard plugin; logout calls it
// so a shared machine never shows the next visitor stale personal data.
type CacheClearer interface {
	ClearUserCache(ctx context.Context, userID string) error
}

// EventRecorder persists authentication events for the audit trail.
// Implemented by the audit plugin. Recording is best-effort: failures are
// logged and never block the auth flow.
type EventRecorder interface {
	RecordLogin(ctx context.Context, userID, email, clientIP string, ok bool) error
	RecordLogout(ctx context.Context, userID, email, clientIP string) error
}

// Handler handles HTTP requests for the authentication gateway (login,
// logout, register). Handlers are thin: they bind the request, call the
// service, and render or redirect. No business logic lives here.
type Handler struct {
	service AuthService
	lockout *Lockout
	caches  CacheClearer
	events  EventRecorder
	base    *url.URL
}

// NewHandler creates a new auth handler with the given collaborators.
// caches and events may be nil in tests.
func NewHandler(service AuthService, lockout *Lockout, caches CacheClearer, events EventRecorder, base *url.URL) *Handler {
	return &Handler{
		service: service,
		lockout: lockout,
		caches:  caches,
		events:  events,
		base:    base,
	}
}

// LoginForm renders the login page (GET /login).
//
// Authenticated visitors never see the form: they are sent to their
// role-based dashboard, or to a same-origin redirect_to target if one was
// supplied. Everyone else gets the form with a message resolved from the
// status query flags, and -- when their address has reached the failure
// threshold -- a disabled form with the lockout message forced. The page
// stays viewable while locked; only submission is blocked.
func (h *Handler) LoginForm(c echo.Context) error {
	rt := c.QueryParam(paramRedirectTo)

	if session := h.currentSession(c); session != nil {
		dest := ResolveRedirect(rt, DefaultDestination(session.Role), h.base)
		return c.Redirect(http.StatusSeeOther, dest)
	}

	locked, err := h.lockout.Locked(c.Request().Context(), c.RealIP())
	if err != nil {
		// A Redis hiccup should not take down the login page; treat the
		// address as unlocked and let the POST-side check catch abuse.
		slog.Warn("lockout check failed", slog.Any("error", err))
		locked = false
	}

	data := pages.LoginData{
		CSRFToken:  middleware.GetCSRFToken(c),
		RedirectTo: rt,
		Disabled:   locked,
	}

	switch {
	case locked:
		data.ErrorMessage = FailureMessage(CodeTooManyAttempts)
	case c.QueryParam(paramError) != "":
		data.ErrorMessage = FailureMessage(c.QueryParam(paramError))
	case c.QueryParam(paramLogin) == "failed":
		data.ErrorMessage = FailureMessage("")
	}

	if data.ErrorMessage == "" {
		switch {
		case c.QueryParam("checkemail") == "confirm":
			data.SuccessMessage = msgCheckEmail
		case c.QueryParam("password") == "changed":
			data.SuccessMessage = msgPasswordChanged
		case c.QueryParam("registered") != "":
			data.SuccessMessage = msgRegistered
		case c.QueryParam("logged_out") == "1":
			data.SuccessMessage = msgLoggedOut
		}
	}

	return middleware.Render(c, http.StatusOK, pages.LoginPage(data))
}

// Login processes the login form submission (POST /login).
//
// Every failure path redirects back to GET /login with login=failed and a
// specific error code, re-entering LoginForm. Credential failures (and only
// credential failures -- not empty fields, which are input errors) increment
// the per-address lockout counter. The counter is never reset here; it
// decays only by TTL expiry.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	ip := c.RealIP()
	ctx := c.Request().Context()

	locked, err := h.lockout.Locked(ctx, ip)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if locked {
		return h.redirectFailed(c, CodeTooManyAttempts, req.RedirectTo)
	}

	if req.Email == "" {
		return h.redirectFailed(c, CodeEmptyUsername, req.RedirectTo)
	}
	if req.Password == "" {
		return h.redirectFailed(c, CodeEmptyPassword, req.RedirectTo)
	}

	input := LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember != "",
	}

	token, session, err := h.service.Login(ctx, input)
	if err != nil {
		if loginErr, ok := err.(*LoginError); ok {
			if _, recErr := h.lockout.RecordFailure(ctx, ip); recErr != nil {
				slog.Warn("recording login failure", slog.Any("error", recErr))
			}
			h.recordLogin(ctx, "", req.Email, ip, false)
			return h.redirectFailed(c, loginErr.Code, req.RedirectTo)
		}
		return err
	}

	h.setSessionCookie(c, token, input.Remember)
	h.recordLogin(ctx, session.UserID, session.Email, ip, true)

	dest := ResolveRedirect(req.RedirectTo, DefaultDestination(session.Role), h.base)
	return c.Redirect(http.StatusSeeOther, dest)
}

// LogoutPage handles GET /logout.
//
// Logout mutates state, so a bare GET only renders a confirmation screen
// carrying a freshly minted nonce bound to the current account. The
// destructive step runs only with confirm=1 and a valid matching nonce;
// anything else falls closed back to the confirmation screen. Unauthenticated
// visitors are bounced to the login page (idempotent).
func (h *Handler) LogoutPage(c echo.Context) error {
	ctx := c.Request().Context()

	token := getSessionToken(c)
	session := h.currentSession(c)
	if session == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	rt := c.QueryParam(paramRedirectTo)

	if c.QueryParam(paramConfirm) == "1" {
		valid, err := h.service.ConsumeLogoutNonce(ctx, c.QueryParam(paramNonce), session.UserID)
		if err != nil {
			return apperror.NewInternal(err)
		}
		if valid {
			return h.performLogout(c, token, session, rt)
		}
		// Invalid or missing nonce: never perform the logout, just show
		// the confirmation again with a fresh token.
	}

	nonce, err := h.service.IssueLogoutNonce(ctx, session.UserID)
	if err != nil {
		return apperror.NewInternal(err)
	}

	return middleware.Render(c, http.StatusOK, pages.LogoutConfirmPage(pages.LogoutConfirmData{
		Name:       session.Name,
		Nonce:      nonce,
		RedirectTo: rt,
	}))
}

// performLogout clears account-scoped caches, destroys the session, clears
// the cookie, and redirects to a validated target.
func (h *Handler) performLogout(c echo.Context, token string, session *Session, rt string) error {
	ctx := c.Request().Context()

	if h.caches != nil {
		if err := h.caches.ClearUserCache(ctx, session.UserID); err != nil {
			slog.Warn("clearing user cache on logout",
				slog.String("user_id", session.UserID),
				slog.Any("error", err),
			)
		}
	}

	if err := h.service.DestroySession(ctx, token); err != nil {
		return err
	}
	clearSessionCookie(c)

	if h.events != nil {
		if err := h.events.RecordLogout(ctx, session.UserID, session.Email, c.RealIP()); err != nil {
			slog.Warn("recording logout event", slog.Any("error", err))
		}
	}

	dest := ResolveRedirect(rt, postLogoutTarget, h.base)
	return c.Redirect(http.StatusSeeOther, dest)
}

// RegisterForm renders the registration page (GET /register).
func (h *Handler) RegisterForm(c echo.Context) error {
	if session := h.currentSession(c); session != nil {
		return c.Redirect(http.StatusSeeOther, DefaultDestination(session.Role))
	}

	return middleware.Render(c, http.StatusOK, pages.RegisterPage(pages.RegisterData{
		CSRFToken: middleware.GetCSRFToken(c),
	}))
}

// Register processes the registration form submission (POST /register).
// Successful registration lands back on the login page with the registered
// flag set rather than auto-logging-in; the gateway stays the single entry
// point for session creation.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if msg := validateRegisterRequest(&req); msg != "" {
		return middleware.Render(c, http.StatusOK, pages.RegisterPage(pages.RegisterData{
			CSRFToken:    middleware.GetCSRFToken(c),
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			ErrorMessage: msg,
		}))
	}

	input := RegisterInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	}

	if _, err := h.service.Register(c.Request().Context(), input); err != nil {
		return middleware.Render(c, http.StatusOK, pages.RegisterPage(pages.RegisterData{
			CSRFToken:    middleware.GetCSRFToken(c),
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			ErrorMessage: apperror.SafeMessage(err),
		}))
	}

	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// --- Helpers ---

// currentSession returns the validated session for the request, or nil.
func (h *Handler) currentSession(c echo.Context) *Session {
	token := getSessionToken(c)
	if token == "" {
		return nil
	}
	session, err := h.service.ValidateSession(c.Request().Context(), token)
	if err != nil {
		return nil
	}
	return session
}

// redirectFailed sends the browser back to the login page with failure
// flags, preserving the redirect_to target across the round trip.
func (h *Handler) redirectFailed(c echo.Context, code, rt string) error {
	q := url.Values{}
	q.Set(paramLogin, "failed")
	q.Set(paramError, code)
	if rt != "" {
		q.Set(paramRedirectTo, rt)
	}
	return c.Redirect(http.StatusSeeOther, "/login?"+q.Encode())
}

// recordLogin persists a login outcome to the audit trail, best-effort.
func (h *Handler) recordLogin(ctx context.Context, userID, email, ip string, ok bool) {
	if h.events == nil {
		return
	}
	if err := h.events.RecordLogin(ctx, userID, email, ip, ok); err != nil {
		slog.Warn("recording login event", slog.Any("error", err))
	}
}

// validateRegisterRequest performs basic server-side validation on the
// registration form. Returns an error message or empty string.
func validateRegisterRequest(req *RegisterRequest) string {
	if req.Email == "" {
		return "email is required"
	}
	if req.DisplayName == "" {
		return "name is required"
	}
	if len(req.DisplayName) > 100 {
		return "name must be at most 100 characters"
	}
	if req.Password == "" {
		return "password is required"
	}
	if len(req.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if len(req.Password) > 128 {
		return "password must be at most 128 characters"
	}
	if req.Confirm != req.Password {
		return "passwords do not match"
	}
	return ""
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
// Remembered sessions persist for 30 days; otherwise the cookie lives for
// the browser session only.
func (h *Handler) setSessionCookie(c echo.Context, token string, remember bool) {
	req := c.Request()
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = 30 * 24 * 60 * 60 // 30 days in seconds
	}
	c.SetCookie(cookie)
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
