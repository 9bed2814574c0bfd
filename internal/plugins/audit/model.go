// Package audit records authentication events: successful and failed logins
// and logouts. The trail feeds the account page's recent-activity panel and
// gives operators a place to look when an address trips the login lockout.
//
// Recording is observational only -- failures here never block an auth flow.
package audit

import "time"

// Event type values. These mirror the ENUM in the login_events table.
const (
	EventLoginOK     = "login_ok"
	EventLoginFailed = "login_failed"
	EventLogout      = "logout"
)

// LoginEvent is one recorded authentication event. UserID is empty for
// failed attempts against unknown accounts.
type LoginEvent struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ClientIP  string    `json:"client_ip"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
}
