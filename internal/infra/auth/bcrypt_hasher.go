// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"crm/config"
	"crm/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The configured cost is
// the current hashing policy; hashes produced at any other cost verify fine
// but are reported as needing a rehash.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Verify compares a plaintext password with a stored bcrypt hash. A match
// produced under a cost other than the current policy reports
// VerifySuccessRehashNeeded so the caller can upgrade the hash.
func (h *bcryptHasher) Verify(hash, password string) service.VerifyResult {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return service.VerifyFailed
	}

	storedCost, err := bcrypt.Cost([]byte(hash))
	if err != nil || storedCost != h.cost {
		return service.VerifySuccessRehashNeeded
	}

	return service.VerifySuccess
}
