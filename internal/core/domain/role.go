package domain

// Canonical role identifiers as issued by the student-management backend.
// ROLE_STUDENT and ROLE_USER are synonyms everywhere policy is evaluated.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleModerator = "ROLE_MODERATOR"
	RoleStudent   = "ROLE_STUDENT"
	RoleUser      = "ROLE_USER"
)

// RoleSet is an ordered, not-necessarily-deduplicated collection of role
// identifiers. Consumers only ever do membership checks, so duplicates are
// harmless and Normalize does not bother removing them.
type RoleSet []string

// Normalize converts any role representation the backend (or a stale stored
// record) may hand us into a RoleSet. Accepted shapes: a bare string, a slice
// of strings, a slice of objects carrying a name/roleName/role field, or a
// single such object. Anything unrecognisable degrades to an empty set;
// normalization never fails.
//
// Bare strings pass through unchanged: prefixing with ROLE_ is the job of
// whoever mints the role, not of normalization. Normalize is idempotent.
func Normalize(input any) RoleSet {
	switch v := input.(type) {
	case nil:
		return RoleSet{}
	case string:
		if v == "" {
			return RoleSet{}
		}
		return RoleSet{v}
	case RoleSet:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []string:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	case []any:
		return normalizeSlice(len(v), func(i int) any { return v[i] })
	default:
		if r := extractRole(v); r != "" {
			return RoleSet{r}
		}
		return RoleSet{}
	}
}

func normalizeSlice(n int, at func(int) any) RoleSet {
	out := make(RoleSet, 0, n)
	for i := 0; i < n; i++ {
		if r := extractRole(at(i)); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// extractRole pulls a role identifier out of a single element. Objects are
// probed for name, then roleName, then role; first non-empty string wins.
func extractRole(v any) string {
	switch e := v.(type) {
	case string:
		return e
	case map[string]any:
		for _, key := range []string{"name", "roleName", "role"} {
			if s, ok := e[key].(string); ok && s != "" {
				return s
			}
		}
	case map[string]string:
		for _, key := range []string{"name", "roleName", "role"} {
			if s := e[key]; s != "" {
				return s
			}
		}
	}
	return ""
}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role string) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one role, folding
// the STUDENT/USER synonym pair into a single identity.
func (s RoleSet) Intersects(other RoleSet) bool {
	for _, a := range s {
		for _, b := range other {
			if rolesMatch(a, b) {
				return true
			}
		}
	}
	return false
}

func rolesMatch(a, b string) bool {
	if a == b {
		return true
	}
	return studentish(a) && studentish(b)
}

func studentish(role string) bool {
	return role == RoleStudent || role == RoleUser
}

// HighestRole returns the highest-priority role in the set
// (ADMIN > MODERATOR > STUDENT > USER), or "" when none apply.
func HighestRole(s RoleSet) string {
	for _, role := range []string{RoleAdmin, RoleModerator, RoleStudent, RoleUser} {
		if s.Has(role) {
			return role
		}
	}
	return ""
}

// DisplayName renders a role identifier for humans, e.g. ROLE_ADMIN → Admin.
func DisplayName(role string) string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleModerator:
		return "Moderator"
	case RoleStudent:
		return "Student"
	case RoleUser:
		return "User"
	}
	if len(role) > 5 && role[:5] == "ROLE_" {
		return role[5:]
	}
	return role
}
