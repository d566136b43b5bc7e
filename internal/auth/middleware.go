package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/authz"
	"github.com/spec-kit/repairshop-service/internal/domain"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The session token is
// the sole source of truth: role and overrides come straight from the
// claims, with no user-store lookup on this side of the backend.
type Principal struct {
	UserID    string
	Role      domain.Role
	Overrides []authz.Permission
}

// AuthMiddleware validates bearer tokens and installs principals.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// An out-of-catalog role still authenticates; the evaluator treats
	// it as permissionless, so every guarded check downstream denies.
	role, _ := domain.ParseRole(string(claims.Role))

	overrides := make([]authz.Permission, 0, len(claims.Overrides))
	for _, o := range claims.Overrides {
		overrides = append(overrides, authz.Permission(o))
	}

	c.Locals(principalKey, &Principal{
		UserID:    claims.Subject,
		Role:      role,
		Overrides: overrides,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
