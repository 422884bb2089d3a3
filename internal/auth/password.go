// Package auth holds the admin password hashing scheme.
//
// Hashes use the passlib pbkdf2-sha256 modular format
//
//	$pbkdf2-sha256$<rounds>$<salt>$<checksum>
//
// where salt and checksum are "adapted base64" (standard alphabet with '.'
// instead of '+', no padding). Legacy bcrypt hashes still verify.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Ident   = "$pbkdf2-sha256$"
	saltBytes     = 16
	keyBytes      = 32
	DefaultRounds = 29000
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher creates and checks admin password hashes.
type PasswordHasher struct {
	rounds int
}

// NewPasswordHasher creates a hasher. Rounds below 1 use DefaultRounds.
func NewPasswordHasher(rounds int) *PasswordHasher {
	if rounds < 1 {
		rounds = DefaultRounds
	}
	return &PasswordHasher{rounds: rounds}
}

// Hash returns a new pbkdf2-sha256 hash of password with a random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, h.rounds, keyBytes, sha256.New)
	return pbkdf2Ident + strconv.Itoa(h.rounds) + "$" + ab64Encode(salt) + "$" + ab64Encode(key), nil
}

// Verify reports whether password matches hash. Unknown or malformed
// hashes never match.
func (h *PasswordHasher) Verify(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, pbkdf2Ident):
		ok, err := verifyPBKDF2(password, hash)
		return err == nil && ok
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return false
}

func verifyPBKDF2(password, hash string) (bool, error) {
	parts := strings.Split(strings.TrimPrefix(hash, pbkdf2Ident), "$")
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds < 1 {
		return false, ErrMalformedHash
	}
	salt, err := ab64Decode(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := ab64Decode(parts[2])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}
	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}

// ConstantTimeEqual compares two secrets without leaking their common prefix
// length through timing.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
