package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"crm/config"
	"crm/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(cost int) service.PasswordHasher {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return NewBcryptHasher(cfg)
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := newTestHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.Equal(t, service.VerifySuccess, hasher.Verify(hash, "Password123!"))
	assert.Equal(t, service.VerifyFailed, hasher.Verify(hash, "wrong"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := newTestHasher(bcrypt.MinCost)

	first, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	second, err := hasher.Hash("Password123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_OutdatedCostNeedsRehash(t *testing.T) {
	// A hash produced under an older, weaker policy still verifies but is
	// flagged for a transparent upgrade.
	oldHash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	hasher := newTestHasher(bcrypt.MinCost + 1)

	assert.Equal(t, service.VerifySuccessRehashNeeded, hasher.Verify(string(oldHash), "Password123!"))
	assert.Equal(t, service.VerifyFailed, hasher.Verify(string(oldHash), "wrong"))
}

func TestBcryptHasher_GarbageHashFailsVerification(t *testing.T) {
	hasher := newTestHasher(bcrypt.MinCost)

	assert.Equal(t, service.VerifyFailed, hasher.Verify("not-a-bcrypt-hash", "Password123!"))
}
