// Package lockout persists per-username failed-login counters in PostgreSQL.
// All application instances share these rows, so the lockout window holds
// across processes.
package lockout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo stores lockout state in the login_attempts table.
type Repo struct {
	db postgres.Querier
}

// New creates a new lockout repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getSQL = `
SELECT username, failed_attempts, locked_until, last_failed_at
FROM login_attempts
WHERE username = $1`

// registerFailureSQL increments the counter and derives locked_until from the
// new count in one statement: min($4, 2^(n-2)) seconds once n >= $3.
const registerFailureSQL = `
INSERT INTO login_attempts AS la (username, failed_attempts, locked_until, last_failed_at, updated_at)
VALUES ($1, 1, NULL, $2, $2)
ON CONFLICT (username) DO UPDATE SET
    failed_attempts = la.failed_attempts + 1,
    last_failed_at  = EXCLUDED.last_failed_at,
    updated_at      = EXCLUDED.updated_at,
    locked_until    = CASE
        WHEN la.failed_attempts + 1 >= $3 THEN
            EXCLUDED.last_failed_at
            + make_interval(secs => LEAST($4::float8, power(2::float8, LEAST(la.failed_attempts + 1 - 2, 30))))
        ELSE NULL
    END
RETURNING username, failed_attempts, locked_until, last_failed_at`

const resetSQL = `DELETE FROM login_attempts WHERE username = $1`

const pruneSQL = `
DELETE FROM login_attempts
WHERE (locked_until IS NOT NULL AND locked_until < $1)
   OR (locked_until IS NULL AND updated_at < $1)`

// Get returns the state for username. An unknown username is Open with zero
// failures.
func (r *Repo) Get(ctx context.Context, username string) (domain.LoginAttempts, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getSQL, username)
	st, err := scanAttempts(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.LoginAttempts{Username: username}, nil
	}
	if err != nil {
		return domain.LoginAttempts{}, postgres.MapError(err, "login_attempts", username)
	}
	return st, nil
}

// RegisterFailure atomically records one failed attempt at now and returns
// the resulting state, including the lock when the threshold is reached.
func (r *Repo) RegisterFailure(ctx context.Context, username string, now time.Time) (domain.LoginAttempts, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, registerFailureSQL,
		username, now, domain.LockoutThreshold, domain.LockoutMaxWait.Seconds())
	st, err := scanAttempts(row)
	if err != nil {
		return domain.LoginAttempts{}, postgres.MapError(err, "login_attempts", username)
	}
	return st, nil
}

// Reset returns username to Open.
func (r *Repo) Reset(ctx context.Context, username string) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, resetSQL, username); err != nil {
		return postgres.MapError(err, "login_attempts", username)
	}
	return nil
}

// PruneBefore deletes rows whose lock expired, or which were last touched,
// before the cutoff. Returns the number of rows removed.
func (r *Repo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, pruneSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "login_attempts", "prune")
	}
	return tag.RowsAffected(), nil
}

func scanAttempts(row pgx.Row) (domain.LoginAttempts, error) {
	var st domain.LoginAttempts
	err := row.Scan(&st.Username, &st.FailedAttempts, &st.LockedUntil, &st.LastFailedAt)
	return st, err
}
