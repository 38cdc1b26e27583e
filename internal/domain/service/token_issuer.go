package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crm/internal/domain/entity"
)

// Claims defines the payload of an issued bearer token. Subject carries the
// username; UserID and Role are custom claims; the registered claims carry
// the unique token id (jti), issuer, audience and the validity window.
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer builds and validates signed, time-bound bearer tokens.
type TokenIssuer interface {
	// Issue creates a signed token for the user and returns it together
	// with its computed expiry.
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)

	// Parse validates a token's signature, issuer, audience and expiry
	// (zero clock-skew tolerance) and returns its claims.
	Parse(token string) (*Claims, error)
}
