package auth

import (
	"testing"
	"time"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, mutate func(*config.JWTConfig)) service.TokenIssuer {
	jwtCfg := &config.JWTConfig{
		Issuer:            "crm-api",
		Audience:          "crm-clients",
		SecretKey:         "test-secret-key",
		ExpirationMinutes: 60,
	}
	if mutate != nil {
		mutate(jwtCfg)
	}

	issuer, err := NewJWTIssuer(&config.Config{JWT: jwtCfg})
	require.NoError(t, err)

	return issuer
}

func testUser() *entity.User {
	return &entity.User{ID: 3, Username: "alice", Role: entity.RoleAdmin}
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t, nil)

	token, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "crm-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTIssuer_RejectsMissingSecret(t *testing.T) {
	_, err := NewJWTIssuer(&config.Config{JWT: &config.JWTConfig{}})
	require.Error(t, err)
}

func TestJWTIssuer_RejectsWrongIssuer(t *testing.T) {
	issuer := newTestIssuer(t, nil)
	other := newTestIssuer(t, func(cfg *config.JWTConfig) {
		cfg.Issuer = "someone-else"
	})

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
}

func TestJWTIssuer_RejectsWrongAudience(t *testing.T) {
	issuer := newTestIssuer(t, nil)
	other := newTestIssuer(t, func(cfg *config.JWTConfig) {
		cfg.Audience = "different-clients"
	})

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
}

func TestJWTIssuer_RejectsTamperedToken(t *testing.T) {
	issuer := newTestIssuer(t, nil)
	forger := newTestIssuer(t, func(cfg *config.JWTConfig) {
		cfg.SecretKey = "attacker-secret"
	})

	token, _, err := forger.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	shortLived := newTestIssuer(t, func(cfg *config.JWTConfig) {
		cfg.ExpirationMinutes = -1
	})

	token, _, err := shortLived.Issue(testUser())
	require.NoError(t, err)

	_, err = shortLived.Parse(token)
	require.Error(t, err)
}
