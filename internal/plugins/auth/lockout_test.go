package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestLockout(t *testing.T) (*Lockout, *miniredis.Miniredis) {
	t.Helper()
	mr, rdb := newTestRedis(t)
	return NewLockout(rdb, 5, 15*time.Minute), mr
}

func TestLockout_LocksAtThreshold(t *testing.T) {
	lockout, _ := newTestLockout(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		n, err := lockout.RecordFailure(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("recording failure %d: %v", i, err)
		}
		if n != i {
			t.Fatalf("expected count %d, got %d", i, n)
		}
		locked, err := lockout.Locked(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("checking lock: %v", err)
		}
		if locked {
			t.Fatalf("locked after only %d failures", i)
		}
	}

	if _, err := lockout.RecordFailure(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("recording fifth failure: %v", err)
	}
	locked, err := lockout.Locked(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("checking lock: %v", err)
	}
	if !locked {
		t.Error("expected lock after 5 failures")
	}
}

func TestLockout_AddressesAreIndependent(t *testing.T) {
	lockout, _ := newTestLockout(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := lockout.RecordFailure(ctx, "203.0.113.7"); err != nil {
			t.Fatalf("recording failure: %v", err)
		}
	}

	locked, err := lockout.Locked(ctx, "198.51.100.9")
	if err != nil {
		t.Fatalf("checking other address: %v", err)
	}
	if locked {
		t.Error("lock on one address must not affect another")
	}
}

func TestLockout_WindowExpiryResetsCount(t *testing.T) {
	lockout, mr := newTestLockout(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := lockout.RecordFailure(ctx, "203.0.113.7"); err != nil {
			t.Fatalf("recording failure: %v", err)
		}
	}

	mr.FastForward(15*time.Minute + time.Second)

	locked, err := lockout.Locked(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("checking lock after window: %v", err)
	}
	if locked {
		t.Error("expected lock to decay after the window")
	}

	// First failure after expiry starts a fresh count at 1.
	n, err := lockout.RecordFailure(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("recording post-window failure: %v", err)
	}
	if n != 1 {
		t.Errorf("expected fresh count 1 after expiry, got %d", n)
	}
}

func TestLockout_WindowAnchoredToFirstFailure(t *testing.T) {
	lockout, mr := newTestLockout(t)
	ctx := context.Background()

	// Failures near the end of the window must not extend it.
	if _, err := lockout.RecordFailure(ctx, "203.0.113.7"); err != nil {
		t.Fatalf("recording failure: %v", err)
	}
	mr.FastForward(14 * time.Minute)
	for i := 0; i < 4; i++ {
		if _, err := lockout.RecordFailure(ctx, "203.0.113.7"); err != nil {
			t.Fatalf("recording failure: %v", err)
		}
	}

	locked, _ := lockout.Locked(ctx, "203.0.113.7")
	if !locked {
		t.Fatal("expected lock at threshold")
	}

	// Just past 15 minutes from the FIRST failure the counter is gone.
	mr.FastForward(time.Minute + time.Second)
	locked, err := lockout.Locked(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("checking lock: %v", err)
	}
	if locked {
		t.Error("window must be anchored to the first failure, not the last")
	}
}

func TestLockout_AttemptsMissingCounterReadsZero(t *testing.T) {
	lockout, _ := newTestLockout(t)

	n, err := lockout.Attempts(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("reading attempts: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for unseen address, got %d", n)
	}
}
