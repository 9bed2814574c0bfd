// Package trainers owns trainer marketplace profiles: the public directory,
// the trainer's own profile management, and the profile lookup that decides
// whether an account logs in as a trainer.
package trainers

import "time"

// Trainer is a coach's marketplace profile. One account has at most one
// trainer profile; its existence is what makes the account a trainer.
type Trainer struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	Sport           string    `json:"sport"`
	HourlyRateCents int       `json:"hourly_rate_cents"`
	Bio             string    `json:"bio"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateProfileRequest holds the data submitted by the profile edit form.
type UpdateProfileRequest struct {
	DisplayName     string `form:"display_name"`
	Sport           string `form:"sport"`
	HourlyRateCents int    `form:"hourly_rate_cents"`
	Bio             string `form:"bio"`
}

// SearchFilter narrows the public trainer directory.
type SearchFilter struct {
	Sport string
	// MaxRateCents of 0 means no price cap.
	MaxRateCents int
	Offset       int
	Limit        int
}

// Sports lists the sports a trainer profile can be tagged with. The directory
// filter and the profile form both draw from this list.
var Sports = []string{
	"basketball",
	"soccer",
	"tennis",
	"baseball",
	"swimming",
	"volleyball",
}

// ValidSport reports whether s is one of the supported sports.
func ValidSport(s string) bool {
	for _, sport := range Sports {
		if sport == s {
			return true
		}
	}
	return false
}
