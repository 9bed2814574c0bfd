// Package dashboard assembles the per-role landing pages. Summaries are
// cached in Redis per user; anything that changes what a dashboard shows
// (bookings, players, logout) calls ClearUserCache.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtside-app/courtside/internal/apperror"
)

// Redis key prefixes for cached dashboard data. Logout clears both so a
// shared machine never shows the next visitor stale personal data.
const (
	dashboardKeyPrefix    = "dashboard:"
	notificationKeyPrefix = "notifications:"
)

// Cache lifetimes. Notifications refresh faster than the summary because
// pending requests are what users check for.
const (
	summaryTTL      = 5 * time.Minute
	notificationTTL = time.Minute
)

// ParentSummary is what a parent sees at the top of their dashboard.
type ParentSummary struct {
	PlayerCount      int `json:"player_count"`
	UpcomingSessions int `json:"upcoming_sessions"`
}

// TrainerSummary is what a trainer sees at the top of theirs.
type TrainerSummary struct {
	PendingRequests  int `json:"pending_requests"`
	UpcomingSessions int `json:"upcoming_sessions"`
}

// ParentStats computes fresh parent dashboard numbers on cache miss.
// Implemented in app wiring on top of the parents and bookings plugins.
type ParentStats interface {
	PlayerCount(ctx context.Context, userID string) (int, error)
	UpcomingSessionCount(ctx context.Context, userID string) (int, error)
}

// TrainerStats computes fresh trainer dashboard numbers on cache miss.
type TrainerStats interface {
	PendingRequestCount(ctx context.Context, userID string) (int, error)
	UpcomingSessionCount(ctx context.Context, userID string) (int, error)
}

// DashboardService builds and caches per-user dashboard summaries.
type DashboardService interface {
	ParentSummary(ctx context.Context, userID string) (*ParentSummary, error)
	TrainerSummary(ctx context.Context, userID string) (*TrainerSummary, error)

	// Notifications returns the count surfaced in the header badge:
	// pending requests for trainers, upcoming sessions for parents.
	Notifications(ctx context.Context, userID string, isTrainer bool) (int, error)

	// ClearUserCache drops all cached entries for a user.
	ClearUserCache(ctx context.Context, userID string) error
}

type dashboardService struct {
	redis    *redis.Client
	parents  ParentStats
	trainers TrainerStats
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(rdb *redis.Client, parents ParentStats, trainers TrainerStats) DashboardService {
	return &dashboardService{
		redis:    rdb,
		parents:  parents,
		trainers: trainers,
	}
}

// ParentSummary returns the cached summary, computing it on miss.
func (s *dashboardService) ParentSummary(ctx context.Context, userID string) (*ParentSummary, error) {
	key := dashboardKeyPrefix + userID

	var cached ParentSummary
	if ok, err := s.readCache(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	players, err := s.parents.PlayerCount(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting players: %w", err))
	}
	upcoming, err := s.parents.UpcomingSessionCount(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting sessions: %w", err))
	}

	summary := &ParentSummary{PlayerCount: players, UpcomingSessions: upcoming}
	s.writeCache(ctx, key, summary, summaryTTL)
	return summary, nil
}

// TrainerSummary returns the cached summary, computing it on miss.
func (s *dashboardService) TrainerSummary(ctx context.Context, userID string) (*TrainerSummary, error) {
	key := dashboardKeyPrefix + userID

	var cached TrainerSummary
	if ok, err := s.readCache(ctx, key, &cached); err != nil {
		return nil, err
	} else if ok {
		return &cached, nil
	}

	pending, err := s.trainers.PendingRequestCount(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting requests: %w", err))
	}
	upcoming, err := s.trainers.UpcomingSessionCount(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("counting sessions: %w", err))
	}

	summary := &TrainerSummary{PendingRequests: pending, UpcomingSessions: upcoming}
	s.writeCache(ctx, key, summary, summaryTTL)
	return summary, nil
}

// Notifications returns the header badge count, cached for a minute.
func (s *dashboardService) Notifications(ctx context.Context, userID string, isTrainer bool) (int, error) {
	key := notificationKeyPrefix + userID

	n, err := s.redis.Get(ctx, key).Int()
	if err == nil {
		return n, nil
	}
	if err != redis.Nil {
		return 0, apperror.NewInternal(fmt.Errorf("reading notification cache: %w", err))
	}

	if isTrainer {
		n, err = s.trainers.PendingRequestCount(ctx, userID)
	} else {
		n, err = s.parents.UpcomingSessionCount(ctx, userID)
	}
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("counting notifications: %w", err))
	}

	// Cache failures are non-fatal; the count is already in hand.
	s.redis.Set(ctx, key, n, notificationTTL)
	return n, nil
}

// ClearUserCache drops every cached entry for a user.
func (s *dashboardService) ClearUserCache(ctx context.Context, userID string) error {
	keys := []string{
		dashboardKeyPrefix + userID,
		notificationKeyPrefix + userID,
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clearing dashboard cache: %w", err)
	}
	return nil
}

// readCache unmarshals a cached JSON value into dst. Returns false on miss.
func (s *dashboardService) readCache(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewInternal(fmt.Errorf("reading dashboard cache: %w", err))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupt entry is treated as a miss and overwritten.
		return false, nil
	}
	return true, nil
}

// writeCache stores a JSON value with a TTL, best-effort.
func (s *dashboardService) writeCache(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.redis.Set(ctx, key, data, ttl)
}
