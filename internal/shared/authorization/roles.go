package authorization

type UserRole string

const (
	RoleAdministrator UserRole = "administrator"
	RoleStandard      UserRole = "standard"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdministrator() bool {
	return r == RoleAdministrator
}

func (r UserRole) IsValid() bool {
	return r == RoleAdministrator || r == RoleStandard
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleStandard
}
