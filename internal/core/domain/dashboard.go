package domain

// Dashboard describes one role-scoped dashboard a user can switch to.
type Dashboard struct {
	Role  string `json:"role"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// AvailableDashboards maps a role set to the dashboards the user may open,
// priority-ordered admin first. STUDENT subsumes USER. A role set matching
// none of the three still yields the student dashboard so the user always
// has somewhere to land.
func AvailableDashboards(roles RoleSet) []string {
	out := make([]string, 0, 3)
	if roles.Has(RoleAdmin) {
		out = append(out, RoleAdmin)
	}
	if roles.Has(RoleModerator) {
		out = append(out, RoleModerator)
	}
	if roles.Has(RoleStudent) || roles.Has(RoleUser) {
		out = append(out, RoleStudent)
	}
	if len(out) == 0 {
		out = append(out, RoleStudent)
	}
	return out
}

// LandingPath returns the canonical landing route for a role. Unrecognised
// input falls back to the student dashboard.
func LandingPath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleModerator:
		return "/moderator"
	case RoleStudent, RoleUser:
		return "/dashboard"
	default:
		return "/dashboard"
	}
}

// DefaultLanding picks the landing route for a whole role set: the highest
// priority role wins.
func DefaultLanding(roles RoleSet) string {
	return LandingPath(HighestRole(roles))
}
