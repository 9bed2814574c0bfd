package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockoutKeyPrefix is the Redis key prefix for per-address failure counters.
const lockoutKeyPrefix = "lockout:"

// incrExpireScript atomically increments a counter and, only when the
// counter is created by this increment, starts its expiry window. Running
// both steps in one script means concurrent failures from the same address
// can never produce a counter without a TTL.
var incrExpireScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Lockout counts failed login attempts per client address in Redis. Counters
// live for a fixed window from the first recorded failure and decay only by
// TTL expiry -- there is no manual reset path. This is a rate-limit
// heuristic, not a security boundary: a lost race between two concurrent
// failures may under-count by one, which is accepted.
type Lockout struct {
	redis     *redis.Client
	threshold int
	window    time.Duration
}

// NewLockout creates a lockout counter store with the given threshold and window.
func NewLockout(rdb *redis.Client, threshold int, window time.Duration) *Lockout {
	return &Lockout{
		redis:     rdb,
		threshold: threshold,
		window:    window,
	}
}

// Threshold returns the number of failures at which an address locks.
func (l *Lockout) Threshold() int {
	return l.threshold
}

// RecordFailure increments the failure counter for the given address,
// creating it with the window TTL if absent. Returns the new count.
func (l *Lockout) RecordFailure(ctx context.Context, addr string) (int, error) {
	n, err := incrExpireScript.Run(ctx, l.redis,
		[]string{lockoutKey(addr)},
		l.window.Milliseconds(),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("incrementing lockout counter: %w", err)
	}
	return n, nil
}

// Attempts returns the current failure count for the address. A missing
// counter (never failed, or window expired) reads as zero.
func (l *Lockout) Attempts(ctx context.Context, addr string) (int, error) {
	n, err := l.redis.Get(ctx, lockoutKey(addr)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading lockout counter: %w", err)
	}
	return n, nil
}

// Locked reports whether the address has reached the failure threshold
// within the current window.
func (l *Lockout) Locked(ctx context.Context, addr string) (bool, error) {
	n, err := l.Attempts(ctx, addr)
	if err != nil {
		return false, err
	}
	return n >= l.threshold, nil
}

// lockoutKey derives the Redis key for an address. The address is hashed so
// raw client IPs never appear in Redis keyspace dumps.
func lockoutKey(addr string) string {
	sum := sha256.Sum256([]byte(addr))
	return lockoutKeyPrefix + hex.EncodeToString(sum[:])
}
