package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// recentActivityLimit caps the events shown on the account page.
const recentActivityLimit = 20

// AuditService defines the business logic contract for the auth event trail.
// RecordLogin and RecordLogout satisfy the auth plugin's event recorder hook.
type AuditService interface {
	RecordLogin(ctx context.Context, userID, email, clientIP string, ok bool) error
	RecordLogout(ctx context.Context, userID, email, clientIP string) error
	RecentActivity(ctx context.Context, userID string) ([]LoginEvent, error)
}

type auditService struct {
	repo AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(repo AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// RecordLogin appends a login outcome to the trail.
func (s *auditService) RecordLogin(ctx context.Context, userID, email, clientIP string, ok bool) error {
	event := EventLoginOK
	if !ok {
		event = EventLoginFailed
	}
	return s.record(ctx, &LoginEvent{
		UserID:    userID,
		Email:     email,
		ClientIP:  clientIP,
		Event:     event,
		CreatedAt: time.Now().UTC(),
	})
}

// RecordLogout appends a logout to the trail.
func (s *auditService) RecordLogout(ctx context.Context, userID, email, clientIP string) error {
	return s.record(ctx, &LoginEvent{
		UserID:    userID,
		Email:     email,
		ClientIP:  clientIP,
		Event:     EventLogout,
		CreatedAt: time.Now().UTC(),
	})
}

// RecentActivity returns the user's latest auth events for the account page.
func (s *auditService) RecentActivity(ctx context.Context, userID string) ([]LoginEvent, error) {
	return s.repo.ListRecentByUser(ctx, userID, recentActivityLimit)
}

func (s *auditService) record(ctx context.Context, event *LoginEvent) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		// Callers treat recording as best-effort, but the failure is
		// still worth a log line here where the event details are known.
		slog.Warn("recording auth event",
			slog.String("event", event.Event),
			slog.Any("error", err),
		)
		return fmt.Errorf("recording auth event: %w", err)
	}
	return nil
}
