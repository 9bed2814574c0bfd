package audit

import (
	"context"
	"errors"
	"testing"
)

// mockAuditRepo implements AuditRepository for testing.
type mockAuditRepo struct {
	insertFn func(ctx context.Context, event *LoginEvent) error
	listFn   func(ctx context.Context, userID string, limit int) ([]LoginEvent, error)
	inserted []*LoginEvent
}

func (m *mockAuditRepo) Insert(ctx context.Context, event *LoginEvent) error {
	m.inserted = append(m.inserted, event)
	if m.insertFn != nil {
		return m.insertFn(ctx, event)
	}
	return nil
}

func (m *mockAuditRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]LoginEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockAuditRepo) CountRecentFailures(ctx context.Context, email string, since int) (int, error) {
	return 0, nil
}

func TestRecordLogin_EventTypes(t *testing.T) {
	repo := &mockAuditRepo{}
	svc := NewAuditService(repo)

	if err := svc.RecordLogin(context.Background(), "user-1", "a@example.com", "203.0.113.7", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RecordLogin(context.Background(), "", "a@example.com", "203.0.113.7", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Event != EventLoginOK {
		t.Errorf("expected login_ok, got %s", repo.inserted[0].Event)
	}
	if repo.inserted[1].Event != EventLoginFailed {
		t.Errorf("expected login_failed, got %s", repo.inserted[1].Event)
	}
	if repo.inserted[1].UserID != "" {
		t.Error("failed attempts against unknown accounts carry no user ID")
	}
	if repo.inserted[0].CreatedAt.IsZero() {
		t.Error("expected event timestamp to be set")
	}
}

func TestRecordLogout(t *testing.T) {
	repo := &mockAuditRepo{}
	svc := NewAuditService(repo)

	if err := svc.RecordLogout(context.Background(), "user-1", "a@example.com", "203.0.113.7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Event != EventLogout {
		t.Fatalf("expected one logout event, got %+v", repo.inserted)
	}
}

func TestRecord_SurfacesRepoError(t *testing.T) {
	repo := &mockAuditRepo{
		insertFn: func(ctx context.Context, event *LoginEvent) error {
			return errors.New("db gone")
		},
	}
	svc := NewAuditService(repo)

	if err := svc.RecordLogin(context.Background(), "user-1", "a@example.com", "203.0.113.7", true); err == nil {
		t.Error("expected error to surface to the caller")
	}
}

func TestRecentActivity_PassesLimit(t *testing.T) {
	var gotLimit int
	repo := &mockAuditRepo{
		listFn: func(ctx context.Context, userID string, limit int) ([]LoginEvent, error) {
			gotLimit = limit
			return []LoginEvent{{Event: EventLoginOK}}, nil
		},
	}
	svc := NewAuditService(repo)

	events, err := svc.RecentActivity(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if gotLimit != recentActivityLimit {
		t.Errorf("expected limit %d, got %d", recentActivityLimit, gotLimit)
	}
}
