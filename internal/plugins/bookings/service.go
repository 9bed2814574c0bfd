package bookings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtside-app/courtside/internal/apperror"
)

// PlayerGuard verifies that a player belongs to the calling account.
// Implemented in app wiring on top of the parents plugin.
type PlayerGuard interface {
	OwnsPlayer(ctx context.Context, userID, playerID string) (bool, error)
}

// TrainerDirectory resolves trainer profiles for booking checks.
// Implemented in app wiring on top of the trainers plugin.
type TrainerDirectory interface {
	TrainerExists(ctx context.Context, trainerID string) (bool, error)
	TrainerIDForUser(ctx context.Context, userID string) (string, error)
}

// BookingService defines the business logic contract for bookings.
type BookingService interface {
	Request(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error)
	ListForParentUser(ctx context.Context, userID string) ([]BookingDetail, error)
	ListForTrainerUser(ctx context.Context, userID string) ([]BookingDetail, error)

	// Trainer-side transitions.
	Confirm(ctx context.Context, userID, bookingID string) error
	Decline(ctx context.Context, userID, bookingID string) error
	Complete(ctx context.Context, userID, bookingID string) error

	// CancelAsParent cancels a booking for one of the caller's players.
	CancelAsParent(ctx context.Context, userID, bookingID string) error
}

// ParentResolver maps an account to its parent profile ID.
type ParentResolver interface {
	ParentIDForUser(ctx context.Context, userID string) (string, error)
}

type bookingService struct {
	repo     BookingRepository
	players  PlayerGuard
	trainers TrainerDirectory
	parents  ParentResolver
	now      func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(repo BookingRepository, players PlayerGuard, trainers TrainerDirectory, parents ParentResolver) BookingService {
	return &bookingService{
		repo:     repo,
		players:  players,
		trainers: trainers,
		parents:  parents,
		now:      time.Now,
	}
}

// Request creates a pending booking for one of the caller's players.
func (s *bookingService) Request(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error) {
	startsAt, err := time.ParseInLocation(startsAtLayout, req.StartsAt, time.Local)
	if err != nil {
		return nil, apperror.NewValidation("invalid start time")
	}

	duration := time.Duration(req.Duration) * time.Minute
	if duration < minDuration || duration > maxDuration {
		return nil, apperror.NewValidation("session length must be between 30 minutes and 3 hours")
	}

	now := s.now()
	if startsAt.Before(now) {
		return nil, apperror.NewValidation("session must start in the future")
	}
	if startsAt.After(now.Add(maxAdvance)) {
		return nil, apperror.NewValidation("sessions can be booked at most 90 days ahead")
	}

	owns, err := s.players.OwnsPlayer(ctx, userID, req.PlayerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking player ownership: %w", err))
	}
	if !owns {
		return nil, apperror.NewForbidden("player does not belong to this account")
	}

	exists, err := s.trainers.TrainerExists(ctx, req.TrainerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking trainer: %w", err))
	}
	if !exists {
		return nil, apperror.NewNotFound("trainer not found")
	}

	endsAt := startsAt.Add(duration)
	overlap, err := s.repo.HasOverlap(ctx, req.TrainerID, startsAt, endsAt)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking overlap: %w", err))
	}
	if overlap {
		return nil, apperror.NewConflict("the trainer already has a session in that time slot")
	}

	booking := &Booking{
		ID:        uuid.NewString(),
		TrainerID: req.TrainerID,
		PlayerID:  req.PlayerID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Status:    StatusPending,
		Location:  strings.TrimSpace(req.Location),
		CreatedAt: now.UTC(),
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating booking: %w", err))
	}

	slog.Info("booking requested",
		slog.String("booking_id", booking.ID),
		slog.String("trainer_id", booking.TrainerID),
	)
	return booking, nil
}

// ListForParentUser returns upcoming bookings across the caller's players.
func (s *bookingService) ListForParentUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	parentID, err := s.parents.ParentIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForParent(ctx, parentID, s.now().Add(-24*time.Hour))
}

// ListForTrainerUser returns upcoming bookings on the caller's schedule.
func (s *bookingService) ListForTrainerUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	trainerID, err := s.trainers.TrainerIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForTrainer(ctx, trainerID, s.now().Add(-24*time.Hour))
}

// Confirm transitions a pending booking to confirmed (trainer only).
func (s *bookingService) Confirm(ctx context.Context, userID, bookingID string) error {
	return s.trainerTransition(ctx, userID, bookingID, StatusPending, StatusConfirmed)
}

// Decline cancels a pending booking (trainer only).
func (s *bookingService) Decline(ctx context.Context, userID, bookingID string) error {
	return s.trainerTransition(ctx, userID, bookingID, StatusPending, StatusCancelled)
}

// Complete marks a confirmed booking as completed once it has ended.
func (s *bookingService) Complete(ctx context.Context, userID, bookingID string) error {
	booking, err := s.ownedByTrainer(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != StatusConfirmed {
		return apperror.NewConflict("only confirmed sessions can be completed")
	}
	if booking.EndsAt.After(s.now()) {
		return apperror.NewConflict("the session has not ended yet")
	}

	return s.repo.UpdateStatus(ctx, bookingID, StatusCompleted)
}

// CancelAsParent cancels a pending or confirmed booking before it starts.
func (s *bookingService) CancelAsParent(ctx context.Context, userID, bookingID string) error {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	owns, err := s.players.OwnsPlayer(ctx, userID, booking.PlayerID)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("checking player ownership: %w", err))
	}
	if !owns {
		return apperror.NewForbidden("booking does not belong to this account")
	}

	if booking.Status != StatusPending && booking.Status != StatusConfirmed {
		return apperror.NewConflict("this session can no longer be cancelled")
	}
	if booking.StartsAt.Before(s.now()) {
		return apperror.NewConflict("sessions cannot be cancelled after they start")
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return err
	}

	slog.Info("booking cancelled", slog.String("booking_id", bookingID))
	return nil
}

// trainerTransition moves one of the caller's bookings from one status to another.
func (s *bookingService) trainerTransition(ctx context.Context, userID, bookingID, from, to string) error {
	booking, err := s.ownedByTrainer(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != from {
		return apperror.NewConflict("the session is no longer " + from)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, to); err != nil {
		return err
	}

	slog.Info("booking status changed",
		slog.String("booking_id", bookingID),
		slog.String("status", to),
	)
	return nil
}

// ownedByTrainer loads a booking and checks it belongs to the caller's
// trainer profile.
func (s *bookingService) ownedByTrainer(ctx context.Context, userID, bookingID string) (*Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	trainerID, err := s.trainers.TrainerIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if booking.TrainerID != trainerID {
		return nil, apperror.NewForbidden("booking does not belong to this trainer")
	}

	return booking, nil
}
