package authz

import "github.com/spec-kit/repairshop-service/internal/domain"

// The evaluator is pure: static tables plus caller-supplied arguments,
// no state and no errors. Missing authorization data degrades to deny,
// with one deliberate exception: routes with no entry in the route table
// are open to everyone. Route allow-lists restrict; everything else
// stays unrestricted.

// HasPermission reports whether the role, extended by any per-user
// overrides, grants the permission. Owner grants everything, including
// permissions outside the catalog. Overrides only ever widen the set.
func HasPermission(role domain.Role, perm Permission, overrides []Permission) bool {
	if role == domain.RoleOwner {
		return true
	}
	for _, o := range overrides {
		if o == perm {
			return true
		}
	}
	for _, granted := range rolePermissions[role] {
		if granted == perm {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of the permissions is
// granted. An empty list grants nothing.
func HasAnyPermission(role domain.Role, perms []Permission, overrides []Permission) bool {
	for _, perm := range perms {
		if HasPermission(role, perm, overrides) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every permission is granted.
// An empty list is vacuously true.
func HasAllPermissions(role domain.Role, perms []Permission, overrides []Permission) bool {
	for _, perm := range perms {
		if !HasPermission(role, perm, overrides) {
			return false
		}
	}
	return true
}

// CanAccessRoute reports whether the role may reach the route. Routes
// not present in the route table are unrestricted for every role.
func CanAccessRoute(role domain.Role, route string, overrides []Permission) bool {
	required, guarded := routePermissions[route]
	if !guarded {
		return true
	}
	return HasAnyPermission(role, required, overrides)
}

// RolePermissions returns the static grant set for the role: the full
// catalog for owner, nil for roles outside the closed set. The returned
// slice is a copy; callers may mutate it freely.
func RolePermissions(role domain.Role) []Permission {
	if role == domain.RoleOwner {
		return Catalog()
	}
	granted, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(granted))
	copy(out, granted)
	return out
}
