package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/archive-backend/internal/auth"
	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

// Authenticate checks one login attempt against the lockout state and the
// stored credentials.
//
// While the username is locked the attempt is rejected without a credential
// check. An unknown user, an inactive user and a wrong password are
// indistinguishable to the caller. Every rejection is audited. When the admin
// store is unreachable the configured environment credentials are tried
// instead, bypassing lockout and audit. A lockout store failure falls back
// only when a Ping confirms the admin store is down as well.
func (s *Service) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.normalize()
	now := s.now()

	state, err := s.lockout.Get(ctx, input.Username)
	if err != nil {
		// A lockout store outage falls back only if the admin store is down too.
		if errors.Is(err, domain.ErrUnavailable) {
			if pingErr := s.admins.Ping(ctx); pingErr != nil {
				return s.degraded(ctx, input, fmt.Errorf("%w: %v", domain.ErrUnavailable, pingErr))
			}
		}
		return nil, fmt.Errorf("auth.Authenticate get lockout: %w", err)
	}

	if wait := state.Remaining(now); wait > 0 {
		s.recordBounce(ctx, input)
		s.log.WarnContext(ctx, "login rejected while locked",
			slog.String("username", input.Username),
			slog.Int("wait_seconds", domain.WaitSeconds(wait)))
		return nil, &LoginError{
			Reason: domain.ReasonLockedOut,
			Wait:   wait,
			Err:    &domain.LockedError{Wait: wait},
		}
	}

	user, err := s.admins.GetByUsername(ctx, input.Username)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user = nil
	case errors.Is(err, domain.ErrUnavailable):
		return s.degraded(ctx, input, err)
	default:
		if pingErr := s.admins.Ping(ctx); pingErr != nil {
			return s.degraded(ctx, input, fmt.Errorf("%w: %v", domain.ErrUnavailable, pingErr))
		}
		return nil, fmt.Errorf("auth.Authenticate get admin: %w", err)
	}

	if user == nil || !user.IsActive {
		// Unknown and inactive users cost one hash check too.
		s.hasher.Verify(input.Password, s.dummyHash())
		return nil, s.recordFailure(ctx, input)
	}
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, s.recordFailure(ctx, input)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.admins.TouchLastLogin(ctx, user.ID, now); err != nil {
			return fmt.Errorf("touch last login: %w", err)
		}
		if err := s.lockout.Reset(ctx, input.Username); err != nil {
			return fmt.Errorf("reset lockout: %w", err)
		}
		return s.audit.Log(ctx, domain.AuditEntry{
			Actor:    user.Username,
			Action:   domain.AuditAuthLogin,
			Entity:   "admin_user",
			EntityID: user.ID.String(),
			Metadata: map[string]any{"remote_addr": input.RemoteAddr},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in", slog.String("username", user.Username))

	return &LoginResult{Username: user.Username, PrincipalID: user.ID.String()}, nil
}

// recordFailure increments the counter and audits the attempt. The returned
// error is always non-nil.
func (s *Service) recordFailure(ctx context.Context, input LoginInput) error {
	now := s.now()
	var state domain.LoginAttempts
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.lockout.RegisterFailure(ctx, input.Username, now)
		if err != nil {
			return fmt.Errorf("register failure: %w", err)
		}
		return s.audit.Log(ctx, s.failureEntry(ctx, input, domain.ReasonInvalidCredentials))
	})
	if err != nil {
		return fmt.Errorf("auth.Authenticate record failure: %w", err)
	}

	wait := state.Remaining(now)
	s.log.WarnContext(ctx, "admin login failed",
		slog.String("username", input.Username),
		slog.Int("failed_attempts", state.FailedAttempts),
		slog.Duration("locked_for", wait))

	return &LoginError{Reason: domain.ReasonInvalidCredentials, Wait: wait, Err: domain.ErrUnauthorized}
}

func (s *Service) recordBounce(ctx context.Context, input LoginInput) {
	if err := s.audit.Log(ctx, s.failureEntry(ctx, input, domain.ReasonLockedOut)); err != nil {
		s.log.ErrorContext(ctx, "audit locked-out login", slog.String("error", err.Error()))
	}
}

func (s *Service) failureEntry(ctx context.Context, input LoginInput, reason string) domain.AuditEntry {
	meta := map[string]any{
		"username":    input.Username,
		"reason":      reason,
		"remote_addr": input.RemoteAddr,
		"client_id":   input.ClientID,
		"user_agent":  input.UserAgent,
	}
	if s.cfg.RecordAttemptedPassword {
		meta["attempted_password"] = input.Password
	} else {
		meta["password_redacted"] = true
	}
	if rid := ctxutil.RequestIDFromCtx(ctx); rid != "" {
		meta["request_id"] = rid
	}
	return domain.AuditEntry{
		Actor:    domain.TrimOr(input.Username, "anonymous"),
		Action:   domain.AuditAuthLoginFailed,
		Entity:   "admin_user",
		EntityID: input.Username,
		Metadata: meta,
	}
}

// degraded handles a confirmed-unreachable admin store.
func (s *Service) degraded(ctx context.Context, input LoginInput, cause error) (*LoginResult, error) {
	if !s.cfg.HasFallback() {
		return nil, fmt.Errorf("auth.Authenticate: %w", cause)
	}

	s.log.WarnContext(ctx, "admin store unavailable, checking environment credentials",
		slog.String("error", cause.Error()))

	userOK := auth.ConstantTimeEqual(input.Username, s.cfg.FallbackUsername)
	passOK := auth.ConstantTimeEqual(input.Password, s.cfg.FallbackPassword)
	if !userOK || !passOK {
		return nil, &LoginError{Reason: domain.ReasonInvalidCredentials, Err: domain.ErrUnauthorized}
	}

	s.log.WarnContext(ctx, "admin logged in with environment credentials",
		slog.String("username", input.Username))

	return &LoginResult{
		Username:    s.cfg.FallbackUsername,
		PrincipalID: "env:" + s.cfg.FallbackUsername,
		Fallback:    true,
	}, nil
}
