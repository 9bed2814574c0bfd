package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// mockParentStats counts calls so cache hits are observable.
type mockParentStats struct {
	players, upcoming int
	calls             int
}

func (m *mockParentStats) PlayerCount(ctx context.Context, userID string) (int, error) {
	m.calls++
	return m.players, nil
}

func (m *mockParentStats) UpcomingSessionCount(ctx context.Context, userID string) (int, error) {
	m.calls++
	return m.upcoming, nil
}

type mockTrainerStats struct {
	pending, upcoming int
	calls             int
}

func (m *mockTrainerStats) PendingRequestCount(ctx context.Context, userID string) (int, error) {
	m.calls++
	return m.pending, nil
}

func (m *mockTrainerStats) UpcomingSessionCount(ctx context.Context, userID string) (int, error) {
	m.calls++
	return m.upcoming, nil
}

func newTestDashboard(t *testing.T) (DashboardService, *mockParentStats, *mockTrainerStats, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	parents := &mockParentStats{players: 2, upcoming: 3}
	trainers := &mockTrainerStats{pending: 1, upcoming: 4}
	return NewDashboardService(rdb, parents, trainers), parents, trainers, mr
}

func TestParentSummary_CachesResult(t *testing.T) {
	svc, parents, _, _ := newTestDashboard(t)
	ctx := context.Background()

	first, err := svc.ParentSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.PlayerCount != 2 || first.UpcomingSessions != 3 {
		t.Errorf("summary mismatch: %+v", first)
	}
	callsAfterFirst := parents.calls

	// Second read must come from Redis, not the stats source.
	second, err := svc.ParentSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parents.calls != callsAfterFirst {
		t.Errorf("expected cache hit, stats were recomputed (%d -> %d calls)", callsAfterFirst, parents.calls)
	}
	if *second != *first {
		t.Errorf("cached summary differs: %+v vs %+v", second, first)
	}
}

func TestParentSummary_ExpiresWithTTL(t *testing.T) {
	svc, parents, _, mr := newTestDashboard(t)
	ctx := context.Background()

	if _, err := svc.ParentSummary(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := parents.calls

	mr.FastForward(summaryTTL + time.Second)

	parents.players = 5
	summary, err := svc.ParentSummary(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parents.calls == callsAfterFirst {
		t.Error("expected recompute after TTL expiry")
	}
	if summary.PlayerCount != 5 {
		t.Errorf("expected fresh count 5, got %d", summary.PlayerCount)
	}
}

func TestTrainerSummary_CachesResult(t *testing.T) {
	svc, _, trainers, _ := newTestDashboard(t)
	ctx := context.Background()

	summary, err := svc.TrainerSummary(ctx, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.PendingRequests != 1 || summary.UpcomingSessions != 4 {
		t.Errorf("summary mismatch: %+v", summary)
	}

	callsAfterFirst := trainers.calls
	if _, err := svc.TrainerSummary(ctx, "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trainers.calls != callsAfterFirst {
		t.Error("expected cache hit on second read")
	}
}

func TestNotifications_PerRoleSource(t *testing.T) {
	svc, _, _, _ := newTestDashboard(t)
	ctx := context.Background()

	n, err := svc.Notifications(ctx, "parent-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("parent badge should show upcoming sessions, got %d", n)
	}

	n, err = svc.Notifications(ctx, "trainer-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("trainer badge should show pending requests, got %d", n)
	}
}

func TestClearUserCache_DropsBothKeys(t *testing.T) {
	svc, parents, _, mr := newTestDashboard(t)
	ctx := context.Background()

	if _, err := svc.ParentSummary(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Notifications(ctx, "user-1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists(dashboardKeyPrefix+"user-1") || !mr.Exists(notificationKeyPrefix+"user-1") {
		t.Fatal("expected both cache keys to exist before clearing")
	}

	if err := svc.ClearUserCache(ctx, "user-1"); err != nil {
		t.Fatalf("clearing cache: %v", err)
	}
	if mr.Exists(dashboardKeyPrefix+"user-1") || mr.Exists(notificationKeyPrefix+"user-1") {
		t.Error("expected cache keys to be gone")
	}

	// Next read recomputes.
	callsBefore := parents.calls
	if _, err := svc.ParentSummary(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parents.calls == callsBefore {
		t.Error("expected recompute after cache clear")
	}
}
