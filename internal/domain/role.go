package domain

// Role enumerates the fixed actor categories of the shop.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
)

// ParseRole maps a raw string onto the closed role set. Anything
// unrecognized comes back as ("", false) so callers deny by default.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCustomer, RoleTechnician, RoleAdmin, RoleOwner:
		return Role(raw), true
	}
	return "", false
}
