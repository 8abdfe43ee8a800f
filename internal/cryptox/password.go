// Package cryptox holds the credential store: one-way, salted password
// hashing with a tunable work factor.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCost is returned when the configured bcrypt cost is outside
// [bcrypt.MinCost, bcrypt.MaxCost].
var ErrInvalidCost = errors.New("invalid bcrypt cost")

// dummyPassword is hashed once per hasher so that lookups of unknown users
// can burn the same amount of CPU as a real comparison.
const dummyPassword = "tasktracker-timing-equalizer"

// PasswordHasher hashes and verifies passwords with bcrypt. Every hash
// embeds its own random salt and cost, so verification needs nothing but the
// stored string.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher returns a hasher using the given bcrypt cost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("precompute dummy hash: %w", err)
	}
	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of plaintext. Passwords longer than 72 bytes
// are rejected by bcrypt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash simply
// does not match.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyDummy performs a comparison against a throwaway hash and always
// reports false.
func (h *PasswordHasher) VerifyDummy(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
