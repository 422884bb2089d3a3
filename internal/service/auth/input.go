package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
	maxPasswordLen = 1024
)

// LoginInput holds one login attempt.
type LoginInput struct {
	Username   string
	Password   string
	RemoteAddr string
	ClientID   string
	UserAgent  string
}

func (i *LoginInput) normalize() {
	i.Username = strings.TrimSpace(i.Username)
	if len(i.Password) > maxPasswordLen {
		i.Password = i.Password[:maxPasswordLen]
	}
}

// BootstrapInput holds parameters for creating or resetting the admin.
type BootstrapInput struct {
	Username string
	Password string
	Token    string
}

// Validate validates the bootstrap input.
func (i BootstrapInput) Validate() error {
	var errs []domain.FieldError

	n := utf8.RuneCountInString(i.Username)
	switch {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	case n < minUsernameLen || n > maxUsernameLen:
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be 3-64 characters"})
	}

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	case utf8.RuneCountInString(i.Password) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	case len(i.Password) > maxPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
