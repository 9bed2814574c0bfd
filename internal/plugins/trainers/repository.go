package trainers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/courtside-app/courtside/internal/apperror"
)

// TrainerRepository defines the data access contract for trainer profiles.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *Trainer) error
	FindByID(ctx context.Context, id string) (*Trainer, error)
	FindByUserID(ctx context.Context, userID string) (*Trainer, error)
	HasProfile(ctx context.Context, userID string) (bool, error)
	Search(ctx context.Context, filter SearchFilter) ([]Trainer, int, error)
	Update(ctx context.Context, trainer *Trainer) error
}

// trainerRepository implements TrainerRepository with hand-written MariaDB queries.
type trainerRepository struct {
	db *sql.DB
}

// NewTrainerRepository creates a new trainer repository backed by the given DB pool.
func NewTrainerRepository(db *sql.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

const trainerColumns = `id, user_id, display_name, sport, hourly_rate_cents, bio, is_verified, created_at`

// scanTrainer scans one trainer row. Bio is nullable in the schema and
// normalized to "" here.
func scanTrainer(row interface{ Scan(...any) error }) (*Trainer, error) {
	t := &Trainer{}
	var bio sql.NullString
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.DisplayName,
		&t.Sport,
		&t.HourlyRateCents,
		&bio,
		&t.IsVerified,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Bio = bio.String
	return t, nil
}

// Create inserts a new trainer profile row.
func (r *trainerRepository) Create(ctx context.Context, trainer *Trainer) error {
	query := `INSERT INTO trainers (id, user_id, display_name, sport, hourly_rate_cents, bio, is_verified, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trainer.ID,
		trainer.UserID,
		trainer.DisplayName,
		trainer.Sport,
		trainer.HourlyRateCents,
		trainer.Bio,
		trainer.IsVerified,
		trainer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting trainer: %w", err)
	}

	return nil
}

// FindByID retrieves a trainer profile by its UUID.
func (r *trainerRepository) FindByID(ctx context.Context, id string) (*Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE id = ?`

	trainer, err := scanTrainer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("trainer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying trainer by id: %w", err)
	}

	return trainer, nil
}

// FindByUserID retrieves the trainer profile belonging to an account.
func (r *trainerRepository) FindByUserID(ctx context.Context, userID string) (*Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE user_id = ?`

	trainer, err := scanTrainer(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("trainer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying trainer by user: %w", err)
	}

	return trainer, nil
}

// HasProfile reports whether the account has a trainer profile. This is the
// role resolution source consulted at login.
func (r *trainerRepository) HasProfile(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM trainers WHERE user_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking trainer profile: %w", err)
	}

	return exists, nil
}

// Search lists trainers matching the filter, verified first then cheapest,
// plus the total match count for pagination.
func (r *trainerRepository) Search(ctx context.Context, filter SearchFilter) ([]Trainer, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.Sport != "" {
		where = append(where, "sport = ?")
		args = append(args, filter.Sport)
	}
	if filter.MaxRateCents > 0 {
		where = append(where, "hourly_rate_cents <= ?")
		args = append(args, filter.MaxRateCents)
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM trainers WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting trainers: %w", err)
	}

	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE ` + cond + `
	          ORDER BY is_verified DESC, hourly_rate_cents ASC, created_at ASC
	          LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching trainers: %w", err)
	}
	defer rows.Close()

	var trainers []Trainer
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning trainer row: %w", err)
		}
		trainers = append(trainers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating trainer rows: %w", err)
	}

	return trainers, total, nil
}

// Update saves the mutable profile fields.
func (r *trainerRepository) Update(ctx context.Context, trainer *Trainer) error {
	query := `UPDATE trainers
	          SET display_name = ?, sport = ?, hourly_rate_cents = ?, bio = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		trainer.DisplayName,
		trainer.Sport,
		trainer.HourlyRateCents,
		trainer.Bio,
		trainer.ID,
	)
	if err != nil {
		return fmt.Errorf("updating trainer: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("trainer not found")
	}

	return nil
}
