package authorization

// Principal is the authenticated actor for a request. A nil *Principal means
// the request is anonymous ("guest"). Principals are constructed once per
// request from the bearer token and never persisted.
type Principal struct {
	ID    uint
	UUID  string
	Email string
	Role  UserRole
}

func (p *Principal) IsAdministrator() bool {
	return p != nil && p.Role.IsAdministrator()
}
