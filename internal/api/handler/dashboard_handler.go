package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/api/middleware"
	"github.com/studentms/portal-gateway/internal/core/domain"
)

// DashboardHandler serves the role-switcher affordances: which dashboards
// the current user may open and where each one lands.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardsResponse struct {
	Dashboards []domain.Dashboard `json:"dashboards"`
	Default    string             `json:"default"`
}

// List returns the dashboards available to the current session,
// priority-ordered, with the default landing path.
//
// @Summary      Available dashboards
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardsResponse
// @Router       /dashboards [get]
func (h *DashboardHandler) List(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return domain.ErrNoSession
	}

	roles := domain.AvailableDashboards(sess.Roles)
	dashboards := make([]domain.Dashboard, 0, len(roles))
	for _, role := range roles {
		dashboards = append(dashboards, domain.Dashboard{
			Role:  role,
			Label: domain.DisplayName(role),
			Path:  domain.LandingPath(role),
		})
	}

	return c.JSON(http.StatusOK, dashboardsResponse{
		Dashboards: dashboards,
		Default:    domain.DefaultLanding(sess.Roles),
	})
}

// Landing redirects to the default landing route for the session's highest
// role.
//
// @Summary      Default landing route
// @Tags         dashboards
// @Success      302
// @Router       /dashboards/landing [get]
func (h *DashboardHandler) Landing(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return domain.ErrNoSession
	}
	return c.Redirect(http.StatusFound, domain.DefaultLanding(sess.Roles))
}

// Board serves the landing payload of one role-scoped dashboard. The actual
// dashboard content lives in the backend; the gateway answers with the
// descriptor the UI shell needs.
func (h *DashboardHandler) Board(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := middleware.SessionFromContext(c)
		if sess == nil {
			return domain.ErrNoSession
		}
		return c.JSON(http.StatusOK, map[string]any{
			"board":    domain.DisplayName(role),
			"path":     domain.LandingPath(role),
			"username": sess.Username,
			"roles":    sess.Roles,
		})
	}
}
