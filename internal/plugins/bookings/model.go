// Package bookings owns training session bookings: a parent books a player
// with a trainer for a time slot, the trainer confirms or declines, and
// either side can cancel ahead of time.
package bookings

import "time"

// Booking status values. These mirror the ENUM in the bookings table.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is one requested or scheduled training session.
type Booking struct {
	ID        string    `json:"id"`
	TrainerID string    `json:"trainer_id"`
	PlayerID  string    `json:"player_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with the names both sides see on their
// schedules.
type BookingDetail struct {
	Booking
	TrainerName string `json:"trainer_name"`
	PlayerName  string `json:"player_name"`
	Sport       string `json:"sport"`
}

// CreateBookingRequest holds the data submitted by the booking form.
type CreateBookingRequest struct {
	TrainerID string `form:"trainer_id"`
	PlayerID  string `form:"player_id"`
	StartsAt  string `form:"starts_at"`
	Duration  int    `form:"duration_minutes"`
	Location  string `form:"location"`
}

// Booking time constraints.
const (
	minDuration = 30 * time.Minute
	maxDuration = 3 * time.Hour
	// maxAdvance caps how far ahead a session can be booked.
	maxAdvance = 90 * 24 * time.Hour
)

// startsAtLayout is the datetime-local format used by the booking form.
const startsAtLayout = "2006-01-02T15:04"
