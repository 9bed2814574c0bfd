package trainers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/courtside-app/courtside/internal/apperror"
	"github.com/courtside-app/courtside/internal/sanitize"
)

// directoryPageSize is the number of trainers per directory page.
const directoryPageSize = 20

// maxHourlyRateCents caps the rate a trainer can set ($500/h).
const maxHourlyRateCents = 50000

// TrainerService defines the business logic contract for trainer profiles.
type TrainerService interface {
	GetByID(ctx context.Context, id string) (*Trainer, error)
	GetByUserID(ctx context.Context, userID string) (*Trainer, error)
	IsTrainer(ctx context.Context, userID string) (bool, error)
	Search(ctx context.Context, sport string, maxRateCents, page int) ([]Trainer, int, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Trainer, error)
}

type trainerService struct {
	repo TrainerRepository
}

// NewTrainerService creates a new trainer service.
func NewTrainerService(repo TrainerRepository) TrainerService {
	return &trainerService{repo: repo}
}

// GetByID returns a trainer profile for the public detail page.
func (s *trainerService) GetByID(ctx context.Context, id string) (*Trainer, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByUserID returns the profile belonging to an account.
func (s *trainerService) GetByUserID(ctx context.Context, userID string) (*Trainer, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// IsTrainer reports whether the account has a trainer profile.
func (s *trainerService) IsTrainer(ctx context.Context, userID string) (bool, error) {
	return s.repo.HasProfile(ctx, userID)
}

// Search runs a directory query for the given page (1-based).
func (s *trainerService) Search(ctx context.Context, sport string, maxRateCents, page int) ([]Trainer, int, error) {
	if sport != "" && !ValidSport(sport) {
		return nil, 0, apperror.NewValidation("unknown sport")
	}
	if page < 1 {
		page = 1
	}

	filter := SearchFilter{
		Sport:        sport,
		MaxRateCents: maxRateCents,
		Offset:       (page - 1) * directoryPageSize,
		Limit:        directoryPageSize,
	}

	trainers, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("searching trainers: %w", err))
	}

	return trainers, total, nil
}

// UpdateProfile validates and saves profile edits. The bio is user-authored
// rich text shown to other users, so it passes through the HTML sanitizer.
func (s *trainerService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*Trainer, error) {
	trainer, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, apperror.NewValidation("display name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewValidation("display name must be at most 100 characters")
	}
	if !ValidSport(req.Sport) {
		return nil, apperror.NewValidation("unknown sport")
	}
	if req.HourlyRateCents < 0 || req.HourlyRateCents > maxHourlyRateCents {
		return nil, apperror.NewValidation("hourly rate is out of range")
	}

	trainer.DisplayName = name
	trainer.Sport = req.Sport
	trainer.HourlyRateCents = req.HourlyRateCents
	trainer.Bio = sanitize.HTML(req.Bio)

	if err := s.repo.Update(ctx, trainer); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("updating trainer profile: %w", err))
	}

	slog.Info("trainer profile updated", slog.String("trainer_id", trainer.ID))
	return trainer, nil
}
