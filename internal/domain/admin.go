package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is the single admin principal. Cardinality is not enforced,
// but exactly one active row is expected.
type AdminUser struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Lockout policy for repeated failed logins.
const (
	LockoutThreshold = 3
	LockoutMaxWait   = 300 * time.Second
)

// LockoutWindow returns the lock duration after the n-th consecutive
// failure: zero below the threshold, then min(300, 2^(n-2)) seconds.
func LockoutWindow(failures int) time.Duration {
	if failures < LockoutThreshold {
		return 0
	}
	exp := failures - 2
	// 2^9 already exceeds the cap.
	if exp >= 9 {
		return LockoutMaxWait
	}
	d := time.Duration(1<<exp) * time.Second
	if d > LockoutMaxWait {
		return LockoutMaxWait
	}
	return d
}

// LoginAttempts is the lockout state for one username.
type LoginAttempts struct {
	Username       string
	FailedAttempts int
	LockedUntil    *time.Time
	LastFailedAt   *time.Time
}

// Remaining reports how long the username stays locked at now.
// Zero means the state is Open.
func (a LoginAttempts) Remaining(now time.Time) time.Duration {
	if a.LockedUntil == nil || !now.Before(*a.LockedUntil) {
		return 0
	}
	return a.LockedUntil.Sub(now)
}

// Locked reports whether the username is inside its lockout window.
func (a LoginAttempts) Locked(now time.Time) bool {
	return a.Remaining(now) > 0
}
