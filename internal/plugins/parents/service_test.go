package parents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside-app/courtside/internal/apperror"
)

// mockParentRepo implements ParentRepository for testing.
type mockParentRepo struct {
	createFn       func(ctx context.Context, parent *Parent) error
	findByUserIDFn func(ctx context.Context, userID string) (*Parent, error)
	updatePhoneFn  func(ctx context.Context, id, phone string) error
	createPlayerFn func(ctx context.Context, player *Player) error
	findPlayerFn   func(ctx context.Context, id string) (*Player, error)
	listPlayersFn  func(ctx context.Context, parentID string) ([]Player, error)
	countPlayersFn func(ctx context.Context, parentID string) (int, error)
	deletePlayerFn func(ctx context.Context, id, parentID string) error
}

func (m *mockParentRepo) Create(ctx context.Context, parent *Parent) error {
	if m.createFn != nil {
		return m.createFn(ctx, parent)
	}
	return nil
}

func (m *mockParentRepo) FindByUserID(ctx context.Context, userID string) (*Parent, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, apperror.NewNotFound("parent profile not found")
}

func (m *mockParentRepo) UpdatePhone(ctx context.Context, id, phone string) error {
	if m.updatePhoneFn != nil {
		return m.updatePhoneFn(ctx, id, phone)
	}
	return nil
}

func (m *mockParentRepo) CreatePlayer(ctx context.Context, player *Player) error {
	if m.createPlayerFn != nil {
		return m.createPlayerFn(ctx, player)
	}
	return nil
}

func (m *mockParentRepo) FindPlayer(ctx context.Context, id string) (*Player, error) {
	if m.findPlayerFn != nil {
		return m.findPlayerFn(ctx, id)
	}
	return nil, apperror.NewNotFound("player not found")
}

func (m *mockParentRepo) ListPlayers(ctx context.Context, parentID string) ([]Player, error) {
	if m.listPlayersFn != nil {
		return m.listPlayersFn(ctx, parentID)
	}
	return nil, nil
}

func (m *mockParentRepo) CountPlayers(ctx context.Context, parentID string) (int, error) {
	if m.countPlayersFn != nil {
		return m.countPlayersFn(ctx, parentID)
	}
	return 0, nil
}

func (m *mockParentRepo) DeletePlayer(ctx context.Context, id, parentID string) error {
	if m.deletePlayerFn != nil {
		return m.deletePlayerFn(ctx, id, parentID)
	}
	return nil
}

func testParent() *Parent {
	return &Parent{
		ID:          "parent-1",
		UserID:      "user-123",
		DisplayName: "Alice",
		CreatedAt:   time.Now().UTC(),
	}
}

func withParent(repo *mockParentRepo) *mockParentRepo {
	repo.findByUserIDFn = func(ctx context.Context, userID string) (*Parent, error) {
		if userID == "user-123" {
			return testParent(), nil
		}
		return nil, apperror.NewNotFound("parent profile not found")
	}
	return repo
}

func anySport(string) bool { return true }

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

// --- CreateParentProfile Tests ---

func TestCreateParentProfile(t *testing.T) {
	var created *Parent
	repo := &mockParentRepo{
		createFn: func(ctx context.Context, parent *Parent) error {
			created = parent
			return nil
		},
	}

	svc := NewParentService(repo, anySport)
	if err := svc.CreateParentProfile(context.Background(), "user-123", "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected profile row to be created")
	}
	if created.ID == "" {
		t.Error("expected generated profile ID")
	}
	if created.UserID != "user-123" || created.DisplayName != "Alice" {
		t.Errorf("profile fields mismatch: %+v", created)
	}
}

// --- AddPlayer Tests ---

func TestAddPlayer_Success(t *testing.T) {
	var created *Player
	repo := withParent(&mockParentRepo{
		createPlayerFn: func(ctx context.Context, player *Player) error {
			created = player
			return nil
		},
	})

	svc := NewParentService(repo, anySport)
	player, err := svc.AddPlayer(context.Background(), "user-123", AddPlayerRequest{
		FirstName: "  Jamie  ",
		BirthYear: time.Now().Year() - 10,
		Sport:     "basketball",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.FirstName != "Jamie" {
		t.Errorf("expected trimmed name, got %q", player.FirstName)
	}
	if created.ParentID != "parent-1" {
		t.Errorf("expected player under parent-1, got %s", created.ParentID)
	}
}

func TestAddPlayer_Validation(t *testing.T) {
	now := time.Now().Year()
	svc := NewParentService(withParent(&mockParentRepo{}), func(s string) bool { return s == "basketball" })

	tests := []struct {
		name string
		req  AddPlayerRequest
	}{
		{"empty name", AddPlayerRequest{BirthYear: now - 10, Sport: "basketball"}},
		{"too young", AddPlayerRequest{FirstName: "Jamie", BirthYear: now - 2, Sport: "basketball"}},
		{"too old", AddPlayerRequest{FirstName: "Jamie", BirthYear: now - 25, Sport: "basketball"}},
		{"unknown sport", AddPlayerRequest{FirstName: "Jamie", BirthYear: now - 10, Sport: "chess"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPlayer(context.Background(), "user-123", tt.req)
			assertAppError(t, err, 422)
		})
	}
}

func TestAddPlayer_LimitEnforced(t *testing.T) {
	repo := withParent(&mockParentRepo{
		countPlayersFn: func(ctx context.Context, parentID string) (int, error) {
			return maxPlayersPerParent, nil
		},
		createPlayerFn: func(ctx context.Context, player *Player) error {
			t.Error("player must not be created past the limit")
			return nil
		},
	})

	svc := NewParentService(repo, anySport)
	_, err := svc.AddPlayer(context.Background(), "user-123", AddPlayerRequest{
		FirstName: "Jamie",
		BirthYear: time.Now().Year() - 10,
		Sport:     "basketball",
	})
	assertAppError(t, err, 422)
}

func TestAddPlayer_NoProfile(t *testing.T) {
	svc := NewParentService(&mockParentRepo{}, anySport)
	_, err := svc.AddPlayer(context.Background(), "user-999", AddPlayerRequest{
		FirstName: "Jamie",
		BirthYear: time.Now().Year() - 10,
		Sport:     "basketball",
	})
	assertAppError(t, err, 404)
}

// --- RemovePlayer Tests ---

func TestRemovePlayer_ScopedToOwnHousehold(t *testing.T) {
	var deletedID, deletedParent string
	repo := withParent(&mockParentRepo{
		deletePlayerFn: func(ctx context.Context, id, parentID string) error {
			deletedID, deletedParent = id, parentID
			return nil
		},
	})

	svc := NewParentService(repo, anySport)
	if err := svc.RemovePlayer(context.Background(), "user-123", "player-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "player-7" || deletedParent != "parent-1" {
		t.Errorf("delete must be scoped to the caller's household, got %s/%s", deletedID, deletedParent)
	}
}

// --- UpdatePhone Tests ---

func TestUpdatePhone_TooLong(t *testing.T) {
	svc := NewParentService(withParent(&mockParentRepo{}), anySport)
	err := svc.UpdatePhone(context.Background(), "user-123", "123456789012345678901234567890123")
	assertAppError(t, err, 422)
}

func TestUpdatePhone_Trimmed(t *testing.T) {
	var savedPhone string
	repo := withParent(&mockParentRepo{
		updatePhoneFn: func(ctx context.Context, id, phone string) error {
			savedPhone = phone
			return nil
		},
	})

	svc := NewParentService(repo, anySport)
	if err := svc.UpdatePhone(context.Background(), "user-123", "  555-0100  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if savedPhone != "555-0100" {
		t.Errorf("expected trimmed phone, got %q", savedPhone)
	}
}
