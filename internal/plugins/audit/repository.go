package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// AuditRepository defines the data access contract for login events.
type AuditRepository interface {
	Insert(ctx context.Context, event *LoginEvent) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]LoginEvent, error)
	CountRecentFailures(ctx context.Context, email string, since int) (int, error)
}

// auditRepository implements AuditRepository with hand-written MariaDB queries.
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository backed by the given DB pool.
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Insert appends one event to the trail.
func (r *auditRepository) Insert(ctx context.Context, event *LoginEvent) error {
	query := `INSERT INTO login_events (user_id, email, client_ip, event, created_at)
	          VALUES (?, ?, ?, ?, ?)`

	var userID any
	if event.UserID != "" {
		userID = event.UserID
	}

	_, err := r.db.ExecContext(ctx, query,
		userID,
		event.Email,
		event.ClientIP,
		event.Event,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting login event: %w", err)
	}

	return nil
}

// ListRecentByUser returns a user's latest events, newest first.
func (r *auditRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]LoginEvent, error) {
	query := `SELECT id, user_id, email, client_ip, event, created_at
	          FROM login_events WHERE user_id = ?
	          ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing login events: %w", err)
	}
	defer rows.Close()

	var events []LoginEvent
	for rows.Next() {
		var e LoginEvent
		var uid sql.NullString
		if err := rows.Scan(&e.ID, &uid, &e.Email, &e.ClientIP, &e.Event, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning login event: %w", err)
		}
		e.UserID = uid.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating login events: %w", err)
	}

	return events, nil
}

// CountRecentFailures counts failed attempts against an email in the last
// `since` minutes. Used by operators to spot credential stuffing that rotates
// addresses (which the per-IP lockout cannot see).
func (r *auditRepository) CountRecentFailures(ctx context.Context, email string, since int) (int, error) {
	query := `SELECT COUNT(*) FROM login_events
	          WHERE email = ? AND event = 'login_failed'
	            AND created_at >= NOW() - INTERVAL ? MINUTE`

	var n int
	if err := r.db.QueryRowContext(ctx, query, email, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting login failures: %w", err)
	}

	return n, nil
}
