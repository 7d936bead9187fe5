package access

// Role is a category of dashboard user. The zero value means "no role".
type Role string

const (
	RoleNone                    Role = ""
	RoleSuperAdmin              Role = "super_admin"
	RoleMunicipalAnalyst        Role = "municipal_analyst"
	RoleEnvironmentalSpecialist Role = "environmental_specialist"
	RoleGISPlanner              Role = "gis_planner"
	RoleTechnologist            Role = "technologist"
	RolePolicyMaker             Role = "policy_maker"
	RoleViewer                  Role = "viewer"
)

var allRoles = []Role{
	RoleSuperAdmin,
	RoleMunicipalAnalyst,
	RoleEnvironmentalSpecialist,
	RoleGISPlanner,
	RoleTechnologist,
	RolePolicyMaker,
	RoleViewer,
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole returns the role named by s and whether it is one of the known roles.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if r.Valid() {
		return r, true
	}
	return RoleNone, false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
