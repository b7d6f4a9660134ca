package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// moderatorScope and studentScope are the required-role sets each privilege
// tier may satisfy in non-strict mode. The cascade is an explicit priority
// list, not a partial order: access flows downward only.
var (
	moderatorScope = domain.RoleSet{domain.RoleModerator, domain.RoleStudent, domain.RoleUser}
	studentScope   = domain.RoleSet{domain.RoleStudent, domain.RoleUser}
)

// Guard decides whether a session may enter a protected route.
type Guard struct {
	sessions *SessionService
	activity ports.ActivityLog
	log      zerolog.Logger
}

func NewGuard(sessions *SessionService, activity ports.ActivityLog, log zerolog.Logger) *Guard {
	return &Guard{sessions: sessions, activity: activity, log: log}
}

// Decide resolves the session from the store and evaluates the route's
// policy against it. Expired sessions are cleared as a side effect (via
// SessionService.Current) and answered with a login redirect; denials are
// recorded in the activity log.
func (g *Guard) Decide(ctx context.Context, store ports.SessionStore, route string, policy domain.RoutePolicy) (domain.Outcome, *domain.Session) {
	sess := g.sessions.Current(ctx, store)
	if sess == nil {
		return domain.OutcomeRedirectLogin, nil
	}

	outcome := Evaluate(domain.Normalize(sess.Roles), policy)
	if outcome == domain.OutcomeRedirectUnauthorized {
		entry := domain.NewActivity(sess.Username, domain.ActionDenied, route)
		if g.activity != nil {
			if err := g.activity.Record(ctx, entry); err != nil {
				g.log.Warn().Err(err).Msg("activity record failed")
			}
		}
	}
	return outcome, sess
}

// Evaluate applies a route policy to an already-normalized role set. It is
// pure: no session lookup, no side effects.
//
// Non-strict policies grant downward access: admins enter anything,
// moderators enter routes requiring moderator or student privileges,
// students enter routes requiring student privileges. Strict policies
// require a direct intersection with the required set (any match, with
// STUDENT and USER treated as the same privilege).
func Evaluate(roles domain.RoleSet, policy domain.RoutePolicy) domain.Outcome {
	if policy.Strict {
		if roles.Intersects(policy.RequiredRoles) {
			return domain.OutcomeRender
		}
		return domain.OutcomeRedirectUnauthorized
	}

	switch {
	case roles.Has(domain.RoleAdmin):
		return domain.OutcomeRender
	case roles.Has(domain.RoleModerator) && policy.RequiredRoles.Intersects(moderatorScope):
		return domain.OutcomeRender
	case (roles.Has(domain.RoleStudent) || roles.Has(domain.RoleUser)) && policy.RequiredRoles.Intersects(studentScope):
		return domain.OutcomeRender
	default:
		return domain.OutcomeRedirectUnauthorized
	}
}
