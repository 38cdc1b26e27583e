package middleware

import (
	"net/http"
	"strings"

	"crm/internal/domain/entity"
	"crm/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// TokenCookieName is the cookie carrying the bearer token for the
	// server-rendered pages.
	TokenCookieName = "crm_token"

	// ContextKeyClaims is the echo.Context key holding the verified claims.
	ContextKeyClaims = "claims"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenIssuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenIssuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokenIssuer: tokenIssuer}
}

// Authenticate validates the bearer token from the Authorization header, or
// from the session cookie when no header is present. API callers get a JSON
// 401 on failure.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.verify(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// AuthenticateWeb validates the same token sources as Authenticate but
// redirects browsers to the login page instead of rendering JSON.
func (m *AuthMiddleware) AuthenticateWeb(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.verify(c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if claims.Role != string(requiredRole) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + string(requiredRole) + "' role"})
			}

			return next(c)
		}
	}
}

// GetClaims returns the verified claims set by Authenticate, or nil.
func GetClaims(c echo.Context) *service.Claims {
	claims, ok := c.Get(ContextKeyClaims).(*service.Claims)
	if !ok {
		return nil
	}

	return claims
}

func (m *AuthMiddleware) verify(c echo.Context) (*service.Claims, error) {
	tokenString := ""

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		trimmed := strings.TrimPrefix(authHeader, "Bearer ")
		if trimmed != authHeader {
			tokenString = trimmed
		}
	}

	if tokenString == "" {
		if cookie, err := c.Cookie(TokenCookieName); err == nil {
			tokenString = cookie.Value
		}
	}

	if tokenString == "" {
		return nil, echo.ErrUnauthorized
	}

	return m.tokenIssuer.Parse(tokenString)
}
