package authz

import "github.com/spec-kit/repairshop-service/internal/domain"

// Permission is an atomic capability flag. Identifiers are flat
// lowercase snake_case strings; membership is never hierarchical.
type Permission string

// The full permission catalog. This table is the single source of truth;
// role sets and route guards below reference it, never redefine it.
const (
	PermViewOwnJobs       Permission = "view_own_jobs"
	PermViewAssignedJobs  Permission = "view_assigned_jobs"
	PermViewAllJobs       Permission = "view_all_jobs"
	PermCreateJob         Permission = "create_job"
	PermUpdateJobStatus   Permission = "update_job_status"
	PermDeleteJob         Permission = "delete_job"
	PermAssignJobs        Permission = "assign_jobs"
	PermAddNote           Permission = "add_note"
	PermViewCustomers     Permission = "view_customers"
	PermManageCustomers   Permission = "manage_customers"
	PermViewNotifications Permission = "view_notifications"
	PermViewReports       Permission = "view_reports"
	PermManageUsers       Permission = "manage_users"
	PermManageBranches    Permission = "manage_branches"
	PermManageSettings    Permission = "manage_settings"
)

// Catalog lists every known permission.
func Catalog() []Permission {
	return []Permission{
		PermViewOwnJobs,
		PermViewAssignedJobs,
		PermViewAllJobs,
		PermCreateJob,
		PermUpdateJobStatus,
		PermDeleteJob,
		PermAssignJobs,
		PermAddNote,
		PermViewCustomers,
		PermManageCustomers,
		PermViewNotifications,
		PermViewReports,
		PermManageUsers,
		PermManageBranches,
		PermManageSettings,
	}
}

// rolePermissions maps each non-owner role to its static grant set.
// Owner is deliberately absent: it matches every permission and is
// handled first in the evaluator rather than enumerated here.
var rolePermissions = map[domain.Role][]Permission{
	domain.RoleCustomer: {
		PermViewOwnJobs,
		PermAddNote,
		PermViewNotifications,
	},
	domain.RoleTechnician: {
		PermViewAssignedJobs,
		PermUpdateJobStatus,
		PermAddNote,
		PermViewCustomers,
		PermViewNotifications,
	},
	domain.RoleAdmin: {
		PermViewAllJobs,
		PermCreateJob,
		PermUpdateJobStatus,
		PermDeleteJob,
		PermAssignJobs,
		PermAddNote,
		PermViewCustomers,
		PermManageCustomers,
		PermViewNotifications,
		PermViewReports,
		PermManageUsers,
	},
}

// routePermissions maps guarded route identifiers to the permissions
// that unlock them, any one of which suffices. Routes absent from this
// table are unrestricted.
var routePermissions = map[string][]Permission{
	"jobs":       {PermViewOwnJobs, PermViewAssignedJobs, PermViewAllJobs},
	"job_create": {PermCreateJob},
	"customers":  {PermViewCustomers, PermManageCustomers},
	"reports":    {PermViewReports},
	"users":      {PermManageUsers},
	"branches":   {PermManageBranches},
	"settings":   {PermManageSettings},
}
