package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/repairshop-service/internal/authz"
	"github.com/spec-kit/repairshop-service/internal/domain"
)

// TokenManager handles issuing and validating session JWTs.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the session payload: who the actor is, their role,
// and any per-user permission overrides granted on top of it.
type Claims struct {
	Role      domain.Role `json:"role"`
	Overrides []string    `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a session JWT.
func (tm *TokenManager) GenerateToken(userID string, role domain.Role, overrides []authz.Permission) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	raw := make([]string, 0, len(overrides))
	for _, o := range overrides {
		raw = append(raw, string(o))
	}
	claims := &Claims{
		Role:      role,
		Overrides: raw,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
