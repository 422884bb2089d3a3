package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// registerFailureScript increments the counter and sets the lock in one step.
// ARGV: now (unix ms), threshold, max wait (s), retention (ms).
var registerFailureScript = redis.NewScript(`
local n = redis.call("HINCRBY", KEYS[1], "failed", 1)
local now = tonumber(ARGV[1])
local until_ms = 0
if n >= tonumber(ARGV[2]) then
  local secs = math.min(tonumber(ARGV[3]), 2 ^ math.min(n - 2, 30))
  until_ms = now + secs * 1000
end
redis.call("HSET", KEYS[1], "last_failed_at", now, "locked_until", until_ms)
redis.call("PEXPIRE", KEYS[1], ARGV[4])
return {n, until_ms}
`)

// LockoutStore keeps lockout state in Redis hashes. Keys expire after the
// retention period, so no explicit pruning is needed.
type LockoutStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// NewLockoutStore creates a Redis lockout store.
func NewLockoutStore(client *redis.Client, prefix string, retention time.Duration) *LockoutStore {
	if retention < domain.LockoutMaxWait {
		retention = domain.LockoutMaxWait
	}
	return &LockoutStore{client: client, prefix: prefixed(prefix, "lockout"), retention: retention}
}

func (s *LockoutStore) key(username string) string {
	return s.prefix + ":" + username
}

// Get returns the state for username; a missing key is Open.
func (s *LockoutStore) Get(ctx context.Context, username string) (domain.LoginAttempts, error) {
	vals, err := s.client.HMGet(ctx, s.key(username), "failed", "locked_until", "last_failed_at").Result()
	if err != nil {
		return domain.LoginAttempts{}, fmt.Errorf("lockout get %s: %w: %v", username, domain.ErrUnavailable, err)
	}

	st := domain.LoginAttempts{Username: username}
	if v, ok := vals[0].(string); ok {
		st.FailedAttempts, _ = strconv.Atoi(v)
	}
	if v, ok := vals[1].(string); ok {
		st.LockedUntil = msTime(v)
	}
	if v, ok := vals[2].(string); ok {
		st.LastFailedAt = msTime(v)
	}
	return st, nil
}

// RegisterFailure atomically records one failed attempt at now.
func (s *LockoutStore) RegisterFailure(ctx context.Context, username string, now time.Time) (domain.LoginAttempts, error) {
	res, err := registerFailureScript.Run(ctx, s.client, []string{s.key(username)},
		now.UnixMilli(), domain.LockoutThreshold, int(domain.LockoutMaxWait.Seconds()), s.retention.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return domain.LoginAttempts{}, fmt.Errorf("lockout register %s: %w: %v", username, domain.ErrUnavailable, err)
	}
	if len(res) != 2 {
		return domain.LoginAttempts{}, errors.New("lockout register: unexpected script result")
	}

	last := time.UnixMilli(now.UnixMilli()).UTC()
	st := domain.LoginAttempts{Username: username, FailedAttempts: int(res[0]), LastFailedAt: &last}
	if res[1] > 0 {
		until := time.UnixMilli(res[1]).UTC()
		st.LockedUntil = &until
	}
	return st, nil
}

// Reset returns username to Open.
func (s *LockoutStore) Reset(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, s.key(username)).Err(); err != nil {
		return fmt.Errorf("lockout reset %s: %w: %v", username, domain.ErrUnavailable, err)
	}
	return nil
}

// PruneBefore is a no-op; keys expire on their own.
func (s *LockoutStore) PruneBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func msTime(v string) *time.Time {
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
