package auth

import "time"

// LoginResult identifies the authenticated principal.
type LoginResult struct {
	Username    string
	PrincipalID string
	// Fallback is set when the admin store was unreachable and the
	// environment credentials were accepted instead.
	Fallback bool
}

// LoginError is returned for every rejected login. Reason is
// domain.ReasonLockedOut or domain.ReasonInvalidCredentials; Err is
// *domain.LockedError or domain.ErrUnauthorized respectively.
type LoginError struct {
	Reason string
	// Wait is the remaining lock, including a lock this attempt triggered.
	Wait time.Duration
	Err  error
}

func (e *LoginError) Error() string {
	return "login rejected: " + e.Reason
}

func (e *LoginError) Unwrap() error { return e.Err }
