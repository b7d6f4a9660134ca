package domain

// Outcome is the result of evaluating a route policy against a session.
type Outcome string

const (
	OutcomeRender               Outcome = "render"
	OutcomeRedirectLogin        Outcome = "redirect_login"
	OutcomeRedirectUnauthorized Outcome = "redirect_unauthorized"
)

// RoutePolicy declares who may enter a protected route.
//
// With Strict false, higher-privilege roles satisfy lower-privilege
// requirements (admins see everything, moderators see moderator and student
// content). With Strict true the user's roles must intersect RequiredRoles
// directly: any match suffices, but no privilege cascade applies.
type RoutePolicy struct {
	RequiredRoles RoleSet
	Strict        bool
}
