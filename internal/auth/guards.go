package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/authz"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

// RequirePermission ensures the caller holds the permission, counting
// any per-user overrides in the session.
func RequirePermission(perm authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !authz.HasPermission(principal.Role, perm, principal.Overrides) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}

// RequireAnyPermission ensures the caller holds at least one of the
// permissions.
func RequireAnyPermission(perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !authz.HasAnyPermission(principal.Role, perms, principal.Overrides) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}

// RequireRouteAccess gates a route group by its identifier in the route
// permission table. Identifiers absent from the table pass everyone,
// matching the evaluator's open-by-default route semantics.
func RequireRouteAccess(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !authz.CanAccessRoute(principal.Role, route, principal.Overrides) {
			return apperrors.NewForbidden("route not permitted")
		}
		return c.Next()
	}
}
