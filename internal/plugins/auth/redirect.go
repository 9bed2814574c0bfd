package auth

import (
	"net/url"
	"strings"
)

// Dashboard paths used as role-based default redirect targets.
const (
	parentDashboardPath  = "/dashboard"
	trainerDashboardPath = "/trainer/dashboard"
)

// DefaultDestination returns the dashboard path for a role. Trainers land on
// the trainer dashboard; everyone else on the parent dashboard.
func DefaultDestination(role Role) string {
	if role == RoleTrainer {
		return trainerDashboardPath
	}
	return parentDashboardPath
}

// ResolveRedirect validates a caller-supplied redirect target against the
// site origin and returns it if safe, otherwise the fallback. This is the
// single place redirect targets are checked -- every redirect decision that
// consumes caller input must go through it.
//
// Accepted targets:
//   - site-relative paths ("/dashboard?tab=players"), excluding
//     scheme-relative forms ("//evil.com") and backslash variants
//   - absolute URLs whose scheme and host equal the base origin
//
// Validation failures silently substitute the fallback; they are never
// surfaced as errors (an attacker-crafted link should not break login for
// the victim who clicked it).
func ResolveRedirect(target, fallback string, base *url.URL) string {
	if target == "" {
		return fallback
	}

	// Site-relative path. "//host" is scheme-relative and "/\" is treated
	// as "//" by some browsers, so both are rejected.
	if strings.HasPrefix(target, "/") {
		if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
			return fallback
		}
		return target
	}

	u, err := url.Parse(target)
	if err != nil {
		return fallback
	}
	if !u.IsAbs() {
		// Bare relative values like "dashboard" resolve against whatever
		// path the browser is on; too ambiguous to trust.
		return fallback
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return fallback
	}
	return target
}
