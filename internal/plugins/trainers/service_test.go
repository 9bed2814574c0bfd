package trainers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/courtside-app/courtside/internal/apperror"
)

// mockTrainerRepo implements TrainerRepository for testing.
type mockTrainerRepo struct {
	createFn       func(ctx context.Context, trainer *Trainer) error
	findByIDFn     func(ctx context.Context, id string) (*Trainer, error)
	findByUserIDFn func(ctx context.Context, userID string) (*Trainer, error)
	hasProfileFn   func(ctx context.Context, userID string) (bool, error)
	searchFn       func(ctx context.Context, filter SearchFilter) ([]Trainer, int, error)
	updateFn       func(ctx context.Context, trainer *Trainer) error
}

func (m *mockTrainerRepo) Create(ctx context.Context, trainer *Trainer) error {
	if m.createFn != nil {
		return m.createFn(ctx, trainer)
	}
	return nil
}

func (m *mockTrainerRepo) FindByID(ctx context.Context, id string) (*Trainer, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("trainer not found")
}

func (m *mockTrainerRepo) FindByUserID(ctx context.Context, userID string) (*Trainer, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, apperror.NewNotFound("trainer not found")
}

func (m *mockTrainerRepo) HasProfile(ctx context.Context, userID string) (bool, error) {
	if m.hasProfileFn != nil {
		return m.hasProfileFn(ctx, userID)
	}
	return false, nil
}

func (m *mockTrainerRepo) Search(ctx context.Context, filter SearchFilter) ([]Trainer, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTrainerRepo) Update(ctx context.Context, trainer *Trainer) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, trainer)
	}
	return nil
}

func testTrainer() *Trainer {
	return &Trainer{
		ID:              "trainer-1",
		UserID:          "user-123",
		DisplayName:     "Coach Sam",
		Sport:           "basketball",
		HourlyRateCents: 4500,
		CreatedAt:       time.Now().UTC(),
	}
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Search Tests ---

func TestSearch_PaginationOffsets(t *testing.T) {
	var captured SearchFilter
	repo := &mockTrainerRepo{
		searchFn: func(ctx context.Context, filter SearchFilter) ([]Trainer, int, error) {
			captured = filter
			return nil, 0, nil
		},
	}

	svc := NewTrainerService(repo)
	_, _, err := svc.Search(context.Background(), "soccer", 5000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Offset != 40 || captured.Limit != 20 {
		t.Errorf("expected offset 40 limit 20, got %d/%d", captured.Offset, captured.Limit)
	}
	if captured.Sport != "soccer" || captured.MaxRateCents != 5000 {
		t.Errorf("filter mismatch: %+v", captured)
	}
}

func TestSearch_PageClampsToOne(t *testing.T) {
	var captured SearchFilter
	repo := &mockTrainerRepo{
		searchFn: func(ctx context.Context, filter SearchFilter) ([]Trainer, int, error) {
			captured = filter
			return nil, 0, nil
		},
	}

	svc := NewTrainerService(repo)
	if _, _, err := svc.Search(context.Background(), "", 0, -4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Offset != 0 {
		t.Errorf("expected offset 0 for clamped page, got %d", captured.Offset)
	}
}

func TestSearch_UnknownSportRejected(t *testing.T) {
	svc := NewTrainerService(&mockTrainerRepo{})
	_, _, err := svc.Search(context.Background(), "curling", 0, 1)
	assertAppError(t, err, 422)
}

// --- UpdateProfile Tests ---

func TestUpdateProfile_Success(t *testing.T) {
	var saved *Trainer
	repo := &mockTrainerRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*Trainer, error) {
			return testTrainer(), nil
		},
		updateFn: func(ctx context.Context, trainer *Trainer) error {
			saved = trainer
			return nil
		},
	}

	svc := NewTrainerService(repo)
	_, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{
		DisplayName:     "  Coach Sam  ",
		Sport:           "tennis",
		HourlyRateCents: 6000,
		Bio:             "<p>Ten years of coaching.</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.DisplayName != "Coach Sam" {
		t.Errorf("expected trimmed name, got %q", saved.DisplayName)
	}
	if saved.Sport != "tennis" || saved.HourlyRateCents != 6000 {
		t.Errorf("profile fields not applied: %+v", saved)
	}
	if !strings.Contains(saved.Bio, "Ten years of coaching.") {
		t.Errorf("expected bio to survive sanitization, got %q", saved.Bio)
	}
}

func TestUpdateProfile_BioIsSanitized(t *testing.T) {
	var saved *Trainer
	repo := &mockTrainerRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*Trainer, error) {
			return testTrainer(), nil
		},
		updateFn: func(ctx context.Context, trainer *Trainer) error {
			saved = trainer
			return nil
		},
	}

	svc := NewTrainerService(repo)
	_, err := svc.UpdateProfile(context.Background(), "user-123", UpdateProfileRequest{
		DisplayName:     "Coach Sam",
		Sport:           "basketball",
		HourlyRateCents: 4500,
		Bio:             `<p>Hi</p><script>alert("xss")</script>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(saved.Bio, "<script>") {
		t.Errorf("script tag survived sanitization: %q", saved.Bio)
	}
	if !strings.Contains(saved.Bio, "<p>Hi</p>") {
		t.Errorf("benign markup stripped: %q", saved.Bio)
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	repo := &mockTrainerRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*Trainer, error) {
			return testTrainer(), nil
		},
	}
	svc := NewTrainerService(repo)

	tests := []struct {
		name string
		req  UpdateProfileRequest
	}{
		{"empty name", UpdateProfileRequest{Sport: "tennis", HourlyRateCents: 100}},
		{"unknown sport", UpdateProfileRequest{DisplayName: "X", Sport: "parkour", HourlyRateCents: 100}},
		{"negative rate", UpdateProfileRequest{DisplayName: "X", Sport: "tennis", HourlyRateCents: -1}},
		{"absurd rate", UpdateProfileRequest{DisplayName: "X", Sport: "tennis", HourlyRateCents: 9_000_000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), "user-123", tt.req)
			assertAppError(t, err, 422)
		})
	}
}

func TestUpdateProfile_NoProfile(t *testing.T) {
	svc := NewTrainerService(&mockTrainerRepo{})
	_, err := svc.UpdateProfile(context.Background(), "user-999", UpdateProfileRequest{
		DisplayName: "X", Sport: "tennis",
	})
	assertAppError(t, err, 404)
}
