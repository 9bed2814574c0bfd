// wiring.go holds the adapters that satisfy one plugin's dependency
// interfaces with another plugin's repositories and services. Plugins
// declare what they need as small local interfaces so they never import
// each other; this file is the only place that sees all of them at once.
package app

import (
	"context"
	"net/http"

	"github.com/courtside-app/courtside/internal/apperror"
	"github.com/courtside-app/courtside/internal/plugins/account"
	"github.com/courtside-app/courtside/internal/plugins/audit"
	"github.com/courtside-app/courtside/internal/plugins/auth"
	"github.com/courtside-app/courtside/internal/plugins/bookings"
	"github.com/courtside-app/courtside/internal/plugins/parents"
	"github.com/courtside-app/courtside/internal/plugins/trainers"
)

// activityTimeLayout formats sign-in activity timestamps for the account page.
const activityTimeLayout = "Jan 2, 2006 3:04 PM"

func isNotFound(err error) bool {
	return apperror.SafeCode(err) == http.StatusNotFound
}

// roleResolver decides an account's session role at login time. An account
// with a trainer profile is a trainer; everyone else is a parent.
type roleResolver struct {
	trainers trainers.TrainerRepository
}

func (r *roleResolver) Resolve(ctx context.Context, userID string) (auth.Role, error) {
	isTrainer, err := r.trainers.HasProfile(ctx, userID)
	if err != nil {
		return auth.RoleNone, err
	}
	if isTrainer {
		return auth.RoleTrainer, nil
	}
	return auth.RoleParent, nil
}

// playerGuard answers the booking plugin's "does this player belong to the
// caller" question from the parents plugin's data.
type playerGuard struct {
	parents parents.ParentRepository
}

func (g *playerGuard) OwnsPlayer(ctx context.Context, userID, playerID string) (bool, error) {
	parent, err := g.parents.FindByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	player, err := g.parents.FindPlayer(ctx, playerID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return player.ParentID == parent.ID, nil
}

// trainerDirectory resolves trainer profiles for booking checks.
type trainerDirectory struct {
	trainers trainers.TrainerRepository
}

func (d *trainerDirectory) TrainerExists(ctx context.Context, trainerID string) (bool, error) {
	_, err := d.trainers.FindByID(ctx, trainerID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *trainerDirectory) TrainerIDForUser(ctx context.Context, userID string) (string, error) {
	trainer, err := d.trainers.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return trainer.ID, nil
}

// parentResolver maps an account to its household profile ID.
type parentResolver struct {
	parents parents.ParentRepository
}

func (r *parentResolver) ParentIDForUser(ctx context.Context, userID string) (string, error) {
	parent, err := r.parents.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return parent.ID, nil
}

// parentStats computes fresh parent dashboard numbers on cache miss.
type parentStats struct {
	parents  parents.ParentRepository
	bookings bookings.BookingRepository
}

func (s *parentStats) PlayerCount(ctx context.Context, userID string) (int, error) {
	parent, err := s.parents.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.parents.CountPlayers(ctx, parent.ID)
}

func (s *parentStats) UpcomingSessionCount(ctx context.Context, userID string) (int, error) {
	parent, err := s.parents.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.bookings.CountUpcomingForParent(ctx, parent.ID)
}

// trainerStats computes fresh trainer dashboard numbers on cache miss.
type trainerStats struct {
	trainers trainers.TrainerRepository
	bookings bookings.BookingRepository
}

func (s *trainerStats) PendingRequestCount(ctx context.Context, userID string) (int, error) {
	trainer, err := s.trainers.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.bookings.CountPendingForTrainer(ctx, trainer.ID)
}

func (s *trainerStats) UpcomingSessionCount(ctx context.Context, userID string) (int, error) {
	trainer, err := s.trainers.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.bookings.CountUpcomingForTrainer(ctx, trainer.ID)
}

// activityFeed translates audit events into the account page's rows.
type activityFeed struct {
	audit audit.AuditService
}

func (f *activityFeed) RecentActivity(ctx context.Context, userID string) ([]account.ActivityEntry, error) {
	events, err := f.audit.RecentActivity(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]account.ActivityEntry, len(events))
	for i, e := range events {
		entries[i] = account.ActivityEntry{
			Event:    e.Event,
			ClientIP: e.ClientIP,
			When:     e.CreatedAt.Local().Format(activityTimeLayout),
		}
	}
	return entries, nil
}
