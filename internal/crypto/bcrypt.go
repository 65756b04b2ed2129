// Package crypto holds the credential hashing used for user passwords.
package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCost is returned by [NewBcryptHasher] for a cost outside
	// bcrypt's accepted range.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
	// ErrHashingPassword wraps failures of the underlying bcrypt call,
	// e.g. a plaintext longer than 72 bytes.
	ErrHashingPassword = errors.New("error hashing password")
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a [Hasher] backed by bcrypt with a fixed cost.
func NewBcryptHasher(cost int) (Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	return &bcryptHasher{cost: cost}, nil
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(digest), nil
}

func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
