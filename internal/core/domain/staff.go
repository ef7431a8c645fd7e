package domain

// StaffRole grants access to route groups.
type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
)

func (r StaffRole) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Allows reports whether a holder of r may use routes that require role.
// Admins may use every staff route.
func (r StaffRole) Allows(role StaffRole) bool {
	if r == RoleAdmin {
		return true
	}
	return r == role
}
