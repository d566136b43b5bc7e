package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repairshop-service/internal/domain"
)

func TestHasPermissionMatchesRoleTable(t *testing.T) {
	for role, granted := range rolePermissions {
		set := make(map[Permission]struct{}, len(granted))
		for _, p := range granted {
			set[p] = struct{}{}
		}
		for _, perm := range Catalog() {
			_, want := set[perm]
			assert.Equal(t, want, HasPermission(role, perm, nil),
				"role %s permission %s", role, perm)
		}
	}
}

func TestHasPermissionScenarios(t *testing.T) {
	assert.True(t, HasPermission(domain.RoleTechnician, PermViewAssignedJobs, nil))
	assert.False(t, HasPermission(domain.RoleTechnician, PermManageUsers, nil))
	assert.False(t, HasPermission(domain.RoleCustomer, PermDeleteJob, nil))
}

func TestOwnerGrantsEverything(t *testing.T) {
	for _, perm := range Catalog() {
		assert.True(t, HasPermission(domain.RoleOwner, perm, nil))
	}
	// Even permissions outside the catalog pass for owner.
	assert.True(t, HasPermission(domain.RoleOwner, Permission("launch_rockets"), nil))
}

func TestUnknownRoleDenied(t *testing.T) {
	ghost := domain.Role("ghost")
	for _, perm := range Catalog() {
		assert.False(t, HasPermission(ghost, perm, nil))
	}
	assert.Nil(t, RolePermissions(ghost))
}

func TestOverridesExtendRoleSet(t *testing.T) {
	overrides := []Permission{PermViewReports}
	assert.True(t, HasPermission(domain.RoleTechnician, PermViewReports, overrides))
	// Overrides widen one user's set; the role table is untouched.
	assert.False(t, HasPermission(domain.RoleTechnician, PermViewReports, nil))
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	perms := []Permission{PermManageUsers, PermAddNote}
	assert.True(t, HasAnyPermission(domain.RoleCustomer, perms, nil))
	assert.False(t, HasAllPermissions(domain.RoleCustomer, perms, nil))
	assert.True(t, HasAllPermissions(domain.RoleAdmin, perms, nil))

	assert.False(t, HasAnyPermission(domain.RoleAdmin, nil, nil))
	assert.True(t, HasAllPermissions(domain.RoleAdmin, nil, nil))
}

func TestCanAccessRoute(t *testing.T) {
	// Guarded routes follow any-of semantics.
	assert.True(t, CanAccessRoute(domain.RoleCustomer, "jobs", nil))
	assert.False(t, CanAccessRoute(domain.RoleCustomer, "reports", nil))
	assert.True(t, CanAccessRoute(domain.RoleAdmin, "reports", nil))
	assert.True(t, CanAccessRoute(domain.RoleTechnician, "reports", []Permission{PermViewReports}))

	// Unmapped routes are open for every role, known or not.
	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleTechnician, domain.RoleAdmin, domain.RoleOwner, domain.Role("ghost")} {
		assert.True(t, CanAccessRoute(role, "home", nil), "role %s", role)
	}
}

func TestRolePermissionsOwnerReturnsCatalog(t *testing.T) {
	require.ElementsMatch(t, Catalog(), RolePermissions(domain.RoleOwner))
}

func TestRolePermissionsReturnsCopy(t *testing.T) {
	perms := RolePermissions(domain.RoleCustomer)
	require.NotEmpty(t, perms)
	perms[0] = Permission("tampered")
	assert.NotContains(t, RolePermissions(domain.RoleCustomer), Permission("tampered"))
}
