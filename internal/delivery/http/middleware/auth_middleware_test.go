package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) *AuthMiddleware {
	issuer, err := auth.NewJWTIssuer(&config.Config{JWT: &config.JWTConfig{
		Issuer:            "crm-api",
		Audience:          "crm-clients",
		SecretKey:         "test-secret-key",
		ExpirationMinutes: 60,
	}})
	require.NoError(t, err)

	return NewAuthMiddleware(issuer)
}

func issueTestToken(t *testing.T, role entity.Role) string {
	issuer, err := auth.NewJWTIssuer(&config.Config{JWT: &config.JWTConfig{
		Issuer:            "crm-api",
		Audience:          "crm-clients",
		SecretKey:         "test-secret-key",
		ExpirationMinutes: 60,
	}})
	require.NoError(t, err)

	token, _, err := issuer.Issue(&entity.User{ID: 3, Username: "alice", Role: role})
	require.NoError(t, err)

	return token
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	m := newTestAuthMiddleware(t)
	token := issueTestToken(t, entity.RoleUser)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, uint(3), claims.UserID)
		assert.Equal(t, "User", claims.Role)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	m := newTestAuthMiddleware(t)
	token := issueTestToken(t, entity.RoleUser)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingTokenIsUnauthorized(t *testing.T) {
	m := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler must not run without a token")

		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRoleRejectsNonAdmin(t *testing.T) {
	m := newTestAuthMiddleware(t)
	token := issueTestToken(t, entity.RoleUser)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run for a non-admin")

		return nil
	}))

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_AuthenticateWebRedirectsToLogin(t *testing.T) {
	m := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.AuthenticateWeb(func(c echo.Context) error {
		t.Fatal("handler must not run without a session")

		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
