package parents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtside-app/courtside/internal/apperror"
)

// ParentService defines the business logic contract for parent households.
type ParentService interface {
	// CreateParentProfile is called by the registration flow for every new
	// account; it satisfies the auth plugin's profile creation hook.
	CreateParentProfile(ctx context.Context, userID, displayName string) error

	GetByUserID(ctx context.Context, userID string) (*Parent, error)
	UpdatePhone(ctx context.Context, userID, phone string) error

	AddPlayer(ctx context.Context, userID string, req AddPlayerRequest) (*Player, error)
	ListPlayers(ctx context.Context, userID string) ([]Player, error)
	RemovePlayer(ctx context.Context, userID, playerID string) error
}

// SportValidator reports whether a sport tag is recognized. Implemented by
// the trainers plugin so both sides share one sport list.
type SportValidator func(sport string) bool

type parentService struct {
	repo       ParentRepository
	validSport SportValidator
}

// NewParentService creates a new parent service.
func NewParentService(repo ParentRepository, validSport SportValidator) ParentService {
	return &parentService{repo: repo, validSport: validSport}
}

// CreateParentProfile creates the household profile accompanying a new account.
func (s *parentService) CreateParentProfile(ctx context.Context, userID, displayName string) error {
	parent := &Parent{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, parent); err != nil {
		return fmt.Errorf("creating parent profile: %w", err)
	}

	slog.Info("parent profile created",
		slog.String("parent_id", parent.ID),
		slog.String("user_id", userID),
	)
	return nil
}

// GetByUserID returns the household profile for an account.
func (s *parentService) GetByUserID(ctx context.Context, userID string) (*Parent, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdatePhone validates and saves the contact phone.
func (s *parentService) UpdatePhone(ctx context.Context, userID, phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 32 {
		return apperror.NewValidation("phone number is too long")
	}

	parent, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.UpdatePhone(ctx, parent.ID, phone)
}

// AddPlayer registers a new player under the account's household.
func (s *parentService) AddPlayer(ctx context.Context, userID string, req AddPlayerRequest) (*Player, error) {
	parent, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.FirstName)
	if name == "" {
		return nil, apperror.NewValidation("player name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewValidation("player name must be at most 100 characters")
	}
	if err := validBirthYear(req.BirthYear); err != nil {
		return nil, err
	}
	if s.validSport != nil && !s.validSport(req.Sport) {
		return nil, apperror.NewValidation("unknown sport")
	}

	count, err := s.repo.CountPlayers(ctx, parent.ID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting players: %w", err))
	}
	if count >= maxPlayersPerParent {
		return nil, apperror.NewValidation("player limit reached for this account")
	}

	player := &Player{
		ID:        uuid.NewString(),
		ParentID:  parent.ID,
		FirstName: name,
		BirthYear: req.BirthYear,
		Sport:     req.Sport,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreatePlayer(ctx, player); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating player: %w", err))
	}

	slog.Info("player added",
		slog.String("player_id", player.ID),
		slog.String("parent_id", parent.ID),
	)
	return player, nil
}

// ListPlayers returns the account's registered players.
func (s *parentService) ListPlayers(ctx context.Context, userID string) ([]Player, error) {
	parent, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPlayers(ctx, parent.ID)
}

// RemovePlayer deletes a player from the account's household. Ownership is
// enforced by scoping the delete to the caller's parent profile.
func (s *parentService) RemovePlayer(ctx context.Context, userID, playerID string) error {
	parent, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.DeletePlayer(ctx, playerID, parent.ID)
}

// validBirthYear keeps player ages inside the youth range (roughly 4-18).
func validBirthYear(year int) error {
	now := time.Now().Year()
	if year < now-18 || year > now-4 {
		return apperror.NewValidation("birth year must place the player between 4 and 18 years old")
	}
	return nil
}
