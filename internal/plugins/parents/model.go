// Package parents owns parent household profiles and the players (kids)
// attached to them. A parent profile is created automatically at
// registration; players are added from the parent dashboard and are what
// bookings are made for.
package parents

import "time"

// Parent is a household profile belonging to one account.
type Parent struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// Player is a child registered under a parent profile. Only the first name
// and birth year are stored; trainers see the player's name and age bracket,
// never contact details.
type Player struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	FirstName string    `json:"first_name"`
	BirthYear int       `json:"birth_year"`
	Sport     string    `json:"sport"`
	CreatedAt time.Time `json:"created_at"`
}

// AddPlayerRequest holds the data submitted by the add-player form.
type AddPlayerRequest struct {
	FirstName string `form:"first_name"`
	BirthYear int    `form:"birth_year"`
	Sport     string `form:"sport"`
}

// maxPlayersPerParent caps how many players one household can register.
const maxPlayersPerParent = 10
