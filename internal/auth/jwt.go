package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/errs"
)

// Claims is the session artifact payload. Downstream requests rebuild the
// caller identity from these three fields without another credential check.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

const tokenValidity = 2 * time.Hour

// Expired reports whether the claims' expiry has passed. Cached claims
// skip the full signature check, so consumers must gate on this.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// GenerateToken signs a session token for a verified principal.
func GenerateToken(cfg *config.JWTConfig, userID int64, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(cfg *config.JWTConfig, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errs.ErrInvalidToken
}
