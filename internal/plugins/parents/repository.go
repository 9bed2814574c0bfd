package parents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside-app/courtside/internal/apperror"
)

// ParentRepository defines the data access contract for parents and players.
type ParentRepository interface {
	Create(ctx context.Context, parent *Parent) error
	FindByUserID(ctx context.Context, userID string) (*Parent, error)
	UpdatePhone(ctx context.Context, id, phone string) error

	CreatePlayer(ctx context.Context, player *Player) error
	FindPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context, parentID string) ([]Player, error)
	CountPlayers(ctx context.Context, parentID string) (int, error)
	DeletePlayer(ctx context.Context, id, parentID string) error
}

// parentRepository implements ParentRepository with hand-written MariaDB queries.
type parentRepository struct {
	db *sql.DB
}

// NewParentRepository creates a new parent repository backed by the given DB pool.
func NewParentRepository(db *sql.DB) ParentRepository {
	return &parentRepository{db: db}
}

// Create inserts a new parent profile row.
func (r *parentRepository) Create(ctx context.Context, parent *Parent) error {
	query := `INSERT INTO parents (id, user_id, display_name, phone, created_at)
	          VALUES (?, ?, ?, ?, ?)`

	var phone any
	if parent.Phone != "" {
		phone = parent.Phone
	}

	_, err := r.db.ExecContext(ctx, query,
		parent.ID,
		parent.UserID,
		parent.DisplayName,
		phone,
		parent.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting parent: %w", err)
	}

	return nil
}

// FindByUserID retrieves the parent profile belonging to an account.
func (r *parentRepository) FindByUserID(ctx context.Context, userID string) (*Parent, error) {
	query := `SELECT id, user_id, display_name, phone, created_at
	          FROM parents WHERE user_id = ?`

	parent := &Parent{}
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&parent.ID,
		&parent.UserID,
		&parent.DisplayName,
		&phone,
		&parent.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("parent profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying parent by user: %w", err)
	}
	parent.Phone = phone.String

	return parent, nil
}

// UpdatePhone sets the contact phone on a parent profile.
func (r *parentRepository) UpdatePhone(ctx context.Context, id, phone string) error {
	query := `UPDATE parents SET phone = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, phone, id)
	if err != nil {
		return fmt.Errorf("updating parent phone: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("parent profile not found")
	}

	return nil
}

// CreatePlayer inserts a new player row under a parent.
func (r *parentRepository) CreatePlayer(ctx context.Context, player *Player) error {
	query := `INSERT INTO players (id, parent_id, first_name, birth_year, sport, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.ParentID,
		player.FirstName,
		player.BirthYear,
		player.Sport,
		player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}

	return nil
}

// FindPlayer retrieves a player by ID.
func (r *parentRepository) FindPlayer(ctx context.Context, id string) (*Player, error) {
	query := `SELECT id, parent_id, first_name, birth_year, sport, created_at
	          FROM players WHERE id = ?`

	player := &Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.ParentID,
		&player.FirstName,
		&player.BirthYear,
		&player.Sport,
		&player.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("player not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// ListPlayers returns all players under a parent, oldest first.
func (r *parentRepository) ListPlayers(ctx context.Context, parentID string) ([]Player, error) {
	query := `SELECT id, parent_id, first_name, birth_year, sport, created_at
	          FROM players WHERE parent_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.ParentID, &p.FirstName, &p.BirthYear, &p.Sport, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating player rows: %w", err)
	}

	return players, nil
}

// CountPlayers returns how many players a parent has registered.
func (r *parentRepository) CountPlayers(ctx context.Context, parentID string) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE parent_id = ?`

	var n int
	if err := r.db.QueryRowContext(ctx, query, parentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}

	return n, nil
}

// DeletePlayer removes a player. The parent ID is part of the predicate so a
// parent can never delete another household's player.
func (r *parentRepository) DeletePlayer(ctx context.Context, id, parentID string) error {
	query := `DELETE FROM players WHERE id = ? AND parent_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, parentID)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("player not found")
	}

	return nil
}
