// Package auth is Courtside's authentication gateway. It owns the login and
// logout pages, credential verification, Redis-backed sessions, the per-address
// login lockout counter, logout confirmation nonces, and safe redirect
// resolution. Parents and trainers share one user table; which dashboard a
// user lands on is decided by role resolution at login.
package auth

import (
	"context"
	"time"
)

// Role is the resolved account role, decided once at login by checking
// whether the account has a trainer profile. It is carried in the session
// so downstream code never re-checks ad hoc.
type Role string

const (
	// RoleNone is the role of an unauthenticated visitor.
	RoleNone Role = ""

	// RoleParent is the default role for authenticated accounts.
	RoleParent Role = "parent"

	// RoleTrainer is the role for accounts with a trainer profile.
	RoleTrainer Role = "trainer"
)

// RoleResolver decides the role for an authenticated account.
// Implemented in app wiring on top of the trainer profile lookup.
type RoleResolver interface {
	Resolve(ctx context.Context, userID string) (Role, error)
}

// User represents a registered Courtside account. Both parents and trainers
// authenticate through this table; their marketplace profiles live in the
// parents and trainers plugins.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// --- Request DTOs (bound from HTTP requests) ---

// LoginRequest holds the data submitted by the login form. The form field
// names (log, pwd, rememberme, redirect_to) are kept verbatim for drop-in
// compatibility with the previous site's login endpoint.
type LoginRequest struct {
	Email      string `form:"log"`
	Password   string `form:"pwd"`
	Remember   string `form:"rememberme"`
	RedirectTo string `form:"redirect_to"`
}

// RegisterRequest holds the data submitted by the registration form.
type RegisterRequest struct {
	Email       string `form:"email"`
	DisplayName string `form:"display_name"`
	Password    string `form:"password"`
	Confirm     string `form:"password_confirm"`
}

// --- Service Input DTOs (passed from handler to service) ---

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

// RegisterInput is the validated input for creating a new parent account.
type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

// --- Session ---

// Session represents an authenticated user session stored in Redis.
// The session token is the key, and this struct is the value (JSON-encoded).
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Errors ---

// LoginError is a credential failure carrying the status code that the
// login page maps to a user-visible message. Any other error from Login is
// an infrastructure failure, not a bad credential.
type LoginError struct {
	Code string
}

// Error implements the error interface.
func (e *LoginError) Error() string {
	return "login failed: " + e.Code
}
