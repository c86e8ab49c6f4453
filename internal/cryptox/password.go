// Package cryptox wraps the one-way password hashing used by the credential
// store.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// ErrMismatch is returned by ComparePassword when the password does not
// produce the stored hash.
var ErrMismatch = errors.New("password mismatch")

// dummyHash is compared against when no stored hash exists, so that a
// lookup miss costs the same as a wrong password.
var dummyHash = mustHash([]byte("postboard-dummy-password"), DefaultCost)

// HashPassword returns a salted bcrypt hash of password. Costs outside the
// bcrypt range fall back to DefaultCost.
func HashPassword(password []byte, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ComparePassword checks password against hash in constant time with
// respect to the hash. A nil hash still performs a full comparison against
// a fixed dummy hash and then reports ErrMismatch.
func ComparePassword(hash, password []byte) error {
	if hash == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, password)
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword(hash, password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

func mustHash(password []byte, cost int) []byte {
	h, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		panic(err)
	}
	return h
}
