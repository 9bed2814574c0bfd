package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtside-app/courtside/internal/apperror"
)

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	ListForTrainer(ctx context.Context, trainerID string, from time.Time) ([]BookingDetail, error)
	ListForParent(ctx context.Context, parentID string, from time.Time) ([]BookingDetail, error)
	UpdateStatus(ctx context.Context, id, status string) error
	HasOverlap(ctx context.Context, trainerID string, startsAt, endsAt time.Time) (bool, error)
	CountUpcomingForParent(ctx context.Context, parentID string) (int, error)
	CountUpcomingForTrainer(ctx context.Context, trainerID string) (int, error)
	CountPendingForTrainer(ctx context.Context, trainerID string) (int, error)
}

// bookingRepository implements BookingRepository with hand-written MariaDB queries.
type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository backed by the given DB pool.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a new booking row.
func (r *bookingRepository) Create(ctx context.Context, booking *Booking) error {
	query := `INSERT INTO bookings (id, trainer_id, player_id, starts_at, ends_at, status, location, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var location any
	if booking.Location != "" {
		location = booking.Location
	}

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.TrainerID,
		booking.PlayerID,
		booking.StartsAt,
		booking.EndsAt,
		booking.Status,
		location,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	return nil
}

// FindByID retrieves a booking by its UUID.
func (r *bookingRepository) FindByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT id, trainer_id, player_id, starts_at, ends_at, status, location, created_at
	          FROM bookings WHERE id = ?`

	booking := &Booking{}
	var location sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.TrainerID,
		&booking.PlayerID,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Status,
		&location,
		&booking.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking: %w", err)
	}
	booking.Location = location.String

	return booking, nil
}

const detailColumns = `b.id, b.trainer_id, b.player_id, b.starts_at, b.ends_at, b.status, b.location, b.created_at,
	       t.display_name, p.first_name, t.sport`

// scanDetail scans one joined booking row.
func scanDetail(rows *sql.Rows) (*BookingDetail, error) {
	d := &BookingDetail{}
	var location sql.NullString
	err := rows.Scan(
		&d.ID,
		&d.TrainerID,
		&d.PlayerID,
		&d.StartsAt,
		&d.EndsAt,
		&d.Status,
		&location,
		&d.CreatedAt,
		&d.TrainerName,
		&d.PlayerName,
		&d.Sport,
	)
	if err != nil {
		return nil, err
	}
	d.Location = location.String
	return d, nil
}

// ListForTrainer returns a trainer's bookings starting at or after from,
// soonest first.
func (r *bookingRepository) ListForTrainer(ctx context.Context, trainerID string, from time.Time) ([]BookingDetail, error) {
	query := `SELECT ` + detailColumns + `
	          FROM bookings b
	          JOIN trainers t ON t.id = b.trainer_id
	          JOIN players p ON p.id = b.player_id
	          WHERE b.trainer_id = ? AND b.starts_at >= ?
	          ORDER BY b.starts_at ASC`

	return r.listDetails(ctx, query, trainerID, from)
}

// ListForParent returns all bookings for a household's players starting at
// or after from, soonest first.
func (r *bookingRepository) ListForParent(ctx context.Context, parentID string, from time.Time) ([]BookingDetail, error) {
	query := `SELECT ` + detailColumns + `
	          FROM bookings b
	          JOIN trainers t ON t.id = b.trainer_id
	          JOIN players p ON p.id = b.player_id
	          WHERE p.parent_id = ? AND b.starts_at >= ?
	          ORDER BY b.starts_at ASC`

	return r.listDetails(ctx, query, parentID, from)
}

func (r *bookingRepository) listDetails(ctx context.Context, query string, args ...any) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var details []BookingDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return details, nil
}

// UpdateStatus transitions a booking to a new status.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("booking not found")
	}

	return nil
}

// HasOverlap reports whether the trainer already has a pending or confirmed
// booking intersecting the given interval.
func (r *bookingRepository) HasOverlap(ctx context.Context, trainerID string, startsAt, endsAt time.Time) (bool, error) {
	query := `SELECT EXISTS(
	            SELECT 1 FROM bookings
	            WHERE trainer_id = ?
	              AND status IN ('pending', 'confirmed')
	              AND starts_at < ? AND ends_at > ?
	          )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, trainerID, endsAt, startsAt).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking booking overlap: %w", err)
	}

	return exists, nil
}

// CountUpcomingForParent counts a household's future non-cancelled bookings.
func (r *bookingRepository) CountUpcomingForParent(ctx context.Context, parentID string) (int, error) {
	query := `SELECT COUNT(*)
	          FROM bookings b
	          JOIN players p ON p.id = b.player_id
	          WHERE p.parent_id = ? AND b.starts_at >= NOW()
	            AND b.status IN ('pending', 'confirmed')`

	var n int
	if err := r.db.QueryRowContext(ctx, query, parentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting upcoming bookings: %w", err)
	}

	return n, nil
}

// CountUpcomingForTrainer counts a trainer's future confirmed sessions.
func (r *bookingRepository) CountUpcomingForTrainer(ctx context.Context, trainerID string) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE trainer_id = ? AND starts_at >= NOW() AND status = 'confirmed'`

	var n int
	if err := r.db.QueryRowContext(ctx, query, trainerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting upcoming sessions: %w", err)
	}

	return n, nil
}

// CountPendingForTrainer counts requests awaiting the trainer's decision.
func (r *bookingRepository) CountPendingForTrainer(ctx context.Context, trainerID string) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE trainer_id = ? AND status = 'pending'`

	var n int
	if err := r.db.QueryRowContext(ctx, query, trainerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending bookings: %w", err)
	}

	return n, nil
}
