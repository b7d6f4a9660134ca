package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/api/metrics"
	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
	"github.com/studentms/portal-gateway/internal/core/service"
)

// Context keys populated by the guard on a rendered route.
const (
	CtxSession   = "session"
	CtxSessionID = "session_id"
)

const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
)

// Guard protects a route group with a declarative policy. It resolves the
// session from the session-ID cookie, asks the route guard for a decision,
// and translates the outcome: render continues down the chain with the
// session in context; the two redirect outcomes become HTTP redirects for
// browser clients and JSON errors with a redirect hint for API clients.
func Guard(guard *service.Guard, stores ports.SessionStores, cookieName string, policy domain.RoutePolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()

			sid := sessionID(c, cookieName)
			if sid == "" {
				metrics.GuardDecisionsTotal.WithLabelValues(string(domain.OutcomeRedirectLogin), route).Inc()
				return deny(c, http.StatusUnauthorized, loginPath)
			}

			outcome, sess := guard.Decide(c.Request().Context(), stores.ForID(sid), route, policy)
			metrics.GuardDecisionsTotal.WithLabelValues(string(outcome), route).Inc()

			switch outcome {
			case domain.OutcomeRender:
				c.Set(CtxSession, sess)
				c.Set(CtxSessionID, sid)
				return next(c)
			case domain.OutcomeRedirectUnauthorized:
				return deny(c, http.StatusForbidden, unauthorizedPath)
			default:
				return deny(c, http.StatusUnauthorized, loginPath)
			}
		}
	}
}

// SessionFromContext returns the session placed in context by Guard.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(CtxSession).(*domain.Session)
	return sess
}

// SessionIDFromContext returns the session-ID cookie value seen by Guard.
func SessionIDFromContext(c echo.Context) string {
	sid, _ := c.Get(CtxSessionID).(string)
	return sid
}

func sessionID(c echo.Context, cookieName string) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

func deny(c echo.Context, status int, target string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, target)
	}
	msg := "authentication required"
	if status == http.StatusForbidden {
		msg = "access forbidden"
	}
	return c.JSON(status, map[string]string{"error": msg, "redirect": target})
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
