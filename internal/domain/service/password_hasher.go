// Package service defines interfaces for core, stateless domain logic.
package service

// VerifyResult is the outcome of checking a password against a stored hash.
type VerifyResult int

const (
	// VerifyFailed means the password does not match the hash.
	VerifyFailed VerifyResult = iota

	// VerifySuccess means the password matches.
	VerifySuccess

	// VerifySuccessRehashNeeded means the password matches but the stored
	// hash uses a superseded scheme and should be transparently rehashed.
	VerifySuccessRehashNeeded
)

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying algorithm (e.g. bcrypt), keeping the domain
// pure. No plaintext password is ever logged, stored, or returned.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify compares a plaintext password with a stored hash.
	Verify(hash, password string) VerifyResult
}
