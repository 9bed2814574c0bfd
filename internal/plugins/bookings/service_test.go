package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside-app/courtside/internal/apperror"
)

// --- Mocks ---

type mockBookingRepo struct {
	createFn       func(ctx context.Context, booking *Booking) error
	findByIDFn     func(ctx context.Context, id string) (*Booking, error)
	updateStatusFn func(ctx context.Context, id, status string) error
	hasOverlapFn   func(ctx context.Context, trainerID string, startsAt, endsAt time.Time) (bool, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("booking not found")
}

func (m *mockBookingRepo) ListForTrainer(ctx context.Context, trainerID string, from time.Time) ([]BookingDetail, error) {
	return nil, nil
}

func (m *mockBookingRepo) ListForParent(ctx context.Context, parentID string, from time.Time) ([]BookingDetail, error) {
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) HasOverlap(ctx context.Context, trainerID string, startsAt, endsAt time.Time) (bool, error) {
	if m.hasOverlapFn != nil {
		return m.hasOverlapFn(ctx, trainerID, startsAt, endsAt)
	}
	return false, nil
}

func (m *mockBookingRepo) CountUpcomingForParent(ctx context.Context, parentID string) (int, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountUpcomingForTrainer(ctx context.Context, trainerID string) (int, error) {
	return 0, nil
}

func (m *mockBookingRepo) CountPendingForTrainer(ctx context.Context, trainerID string) (int, error) {
	return 0, nil
}

type mockPlayerGuard struct{ owned map[string]bool }

func (m *mockPlayerGuard) OwnsPlayer(ctx context.Context, userID, playerID string) (bool, error) {
	return m.owned[userID+"/"+playerID], nil
}

type mockTrainerDirectory struct {
	exists  map[string]bool
	userMap map[string]string
}

func (m *mockTrainerDirectory) TrainerExists(ctx context.Context, trainerID string) (bool, error) {
	return m.exists[trainerID], nil
}

func (m *mockTrainerDirectory) TrainerIDForUser(ctx context.Context, userID string) (string, error) {
	if id, ok := m.userMap[userID]; ok {
		return id, nil
	}
	return "", apperror.NewNotFound("trainer not found")
}

type mockParentResolver struct{ ids map[string]string }

func (m *mockParentResolver) ParentIDForUser(ctx context.Context, userID string) (string, error) {
	if id, ok := m.ids[userID]; ok {
		return id, nil
	}
	return "", apperror.NewNotFound("parent profile not found")
}

// --- Fixture ---

// testClock is a frozen now() for deterministic time checks.
var testClock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func newTestService(repo *mockBookingRepo) *bookingService {
	return &bookingService{
		repo: repo,
		players: &mockPlayerGuard{owned: map[string]bool{
			"parent-user/player-1": true,
		}},
		trainers: &mockTrainerDirectory{
			exists:  map[string]bool{"trainer-1": true},
			userMap: map[string]string{"trainer-user": "trainer-1"},
		},
		parents: &mockParentResolver{ids: map[string]string{"parent-user": "parent-1"}},
		now:     func() time.Time { return testClock },
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		TrainerID: "trainer-1",
		PlayerID:  "player-1",
		StartsAt:  testClock.Add(48 * time.Hour).Format(startsAtLayout),
		Duration:  60,
		Location:  "Riverside Park, court 2",
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

// --- Request Tests ---

func TestRequest_Success(t *testing.T) {
	var created *Booking
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *Booking) error {
			created = booking
			return nil
		},
	}

	svc := newTestService(repo)
	booking, err := svc.Request(context.Background(), "parent-user", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != StatusPending {
		t.Errorf("new bookings must be pending, got %s", booking.Status)
	}
	if created.EndsAt.Sub(created.StartsAt) != time.Hour {
		t.Errorf("expected 1h session, got %v", created.EndsAt.Sub(created.StartsAt))
	}
}

func TestRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		code   int
	}{
		{"bad start time", func(r *CreateBookingRequest) { r.StartsAt = "next tuesday" }, 422},
		{"too short", func(r *CreateBookingRequest) { r.Duration = 15 }, 422},
		{"too long", func(r *CreateBookingRequest) { r.Duration = 240 }, 422},
		{"in the past", func(r *CreateBookingRequest) {
			r.StartsAt = testClock.Add(-time.Hour).Format(startsAtLayout)
		}, 422},
		{"too far ahead", func(r *CreateBookingRequest) {
			r.StartsAt = testClock.Add(91 * 24 * time.Hour).Format(startsAtLayout)
		}, 422},
		{"foreign player", func(r *CreateBookingRequest) { r.PlayerID = "player-99" }, 403},
		{"unknown trainer", func(r *CreateBookingRequest) { r.TrainerID = "trainer-99" }, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepo{})
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Request(context.Background(), "parent-user", req)
			assertAppError(t, err, tt.code)
		})
	}
}

func TestRequest_OverlapRejected(t *testing.T) {
	repo := &mockBookingRepo{
		hasOverlapFn: func(ctx context.Context, trainerID string, startsAt, endsAt time.Time) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			t.Error("overlapping booking must not be created")
			return nil
		},
	}

	svc := newTestService(repo)
	_, err := svc.Request(context.Background(), "parent-user", validRequest())
	assertAppError(t, err, 409)
}

// --- Trainer Transition Tests ---

func pendingBooking() *Booking {
	return &Booking{
		ID:        "booking-1",
		TrainerID: "trainer-1",
		PlayerID:  "player-1",
		StartsAt:  testClock.Add(48 * time.Hour),
		EndsAt:    testClock.Add(49 * time.Hour),
		Status:    StatusPending,
	}
}

func TestConfirm_Success(t *testing.T) {
	var newStatus string
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return pendingBooking(), nil
		},
		updateStatusFn: func(ctx context.Context, id, status string) error {
			newStatus = status
			return nil
		},
	}

	svc := newTestService(repo)
	if err := svc.Confirm(context.Background(), "trainer-user", "booking-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newStatus != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", newStatus)
	}
}

func TestConfirm_ForeignTrainerForbidden(t *testing.T) {
	booking := pendingBooking()
	booking.TrainerID = "trainer-2"
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.Confirm(context.Background(), "trainer-user", "booking-1")
	assertAppError(t, err, 403)
}

func TestConfirm_WrongStatus(t *testing.T) {
	booking := pendingBooking()
	booking.Status = StatusCancelled
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.Confirm(context.Background(), "trainer-user", "booking-1")
	assertAppError(t, err, 409)
}

func TestComplete_BeforeEndRejected(t *testing.T) {
	booking := pendingBooking()
	booking.Status = StatusConfirmed
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.Complete(context.Background(), "trainer-user", "booking-1")
	assertAppError(t, err, 409)
}

func TestComplete_AfterEnd(t *testing.T) {
	booking := pendingBooking()
	booking.Status = StatusConfirmed
	booking.StartsAt = testClock.Add(-2 * time.Hour)
	booking.EndsAt = testClock.Add(-time.Hour)

	var newStatus string
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
		updateStatusFn: func(ctx context.Context, id, status string) error {
			newStatus = status
			return nil
		},
	}

	svc := newTestService(repo)
	if err := svc.Complete(context.Background(), "trainer-user", "booking-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newStatus != StatusCompleted {
		t.Errorf("expected completed, got %s", newStatus)
	}
}

// --- Parent Cancellation Tests ---

func TestCancelAsParent_Success(t *testing.T) {
	var newStatus string
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return pendingBooking(), nil
		},
		updateStatusFn: func(ctx context.Context, id, status string) error {
			newStatus = status
			return nil
		},
	}

	svc := newTestService(repo)
	if err := svc.CancelAsParent(context.Background(), "parent-user", "booking-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newStatus != StatusCancelled {
		t.Errorf("expected cancelled, got %s", newStatus)
	}
}

func TestCancelAsParent_ForeignPlayerForbidden(t *testing.T) {
	booking := pendingBooking()
	booking.PlayerID = "player-99"
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.CancelAsParent(context.Background(), "parent-user", "booking-1")
	assertAppError(t, err, 403)
}

func TestCancelAsParent_AfterStartRejected(t *testing.T) {
	booking := pendingBooking()
	booking.Status = StatusConfirmed
	booking.StartsAt = testClock.Add(-time.Minute)
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.CancelAsParent(context.Background(), "parent-user", "booking-1")
	assertAppError(t, err, 409)
}

func TestCancelAsParent_CompletedRejected(t *testing.T) {
	booking := pendingBooking()
	booking.Status = StatusCompleted
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			return booking, nil
		},
	}

	svc := newTestService(repo)
	err := svc.CancelAsParent(context.Background(), "parent-user", "booking-1")
	assertAppError(t, err, 409)
}
