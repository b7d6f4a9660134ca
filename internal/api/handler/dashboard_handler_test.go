package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/api/middleware"
	"github.com/studentms/portal-gateway/internal/core/domain"
)

func dashboardContext(t *testing.T, e *echo.Echo, roles domain.RoleSet) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/dashboards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxSession, &domain.Session{Username: "alice", Roles: roles})
	return c, rec
}

func TestDashboardHandler_List_Admin(t *testing.T) {
	e := echo.New()
	handler := NewDashboardHandler()
	c, rec := dashboardContext(t, e, domain.RoleSet{domain.RoleAdmin, domain.RoleStudent})

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Dashboards []domain.Dashboard `json:"dashboards"`
		Default    string             `json:"default"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Dashboards) != 2 {
		t.Fatalf("expected 2 dashboards, got %d", len(resp.Dashboards))
	}
	if resp.Dashboards[0].Role != domain.RoleAdmin || resp.Dashboards[0].Path != "/admin" {
		t.Fatalf("unexpected first dashboard: %+v", resp.Dashboards[0])
	}
	if resp.Dashboards[1].Role != domain.RoleStudent || resp.Dashboards[1].Path != "/dashboard" {
		t.Fatalf("unexpected second dashboard: %+v", resp.Dashboards[1])
	}
	if resp.Default != "/admin" {
		t.Fatalf("expected default /admin, got %s", resp.Default)
	}
}

func TestDashboardHandler_List_UnknownRolesFallBackToStudent(t *testing.T) {
	e := echo.New()
	handler := NewDashboardHandler()
	c, rec := dashboardContext(t, e, domain.RoleSet{"ROLE_AUDITOR"})

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Dashboards []domain.Dashboard `json:"dashboards"`
		Default    string             `json:"default"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Dashboards) != 1 || resp.Dashboards[0].Role != domain.RoleStudent {
		t.Fatalf("expected student fallback, got %+v", resp.Dashboards)
	}
}

func TestDashboardHandler_List_NoSession(t *testing.T) {
	e := echo.New()
	handler := NewDashboardHandler()

	req := httptest.NewRequest(http.MethodGet, "/dashboards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestDashboardHandler_Landing_RedirectsToHighestRole(t *testing.T) {
	e := echo.New()
	handler := NewDashboardHandler()
	c, rec := dashboardContext(t, e, domain.RoleSet{domain.RoleStudent, domain.RoleModerator})

	if err := handler.Landing(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/moderator" {
		t.Fatalf("expected /moderator, got %s", loc)
	}
}

func TestDashboardHandler_Board(t *testing.T) {
	e := echo.New()
	handler := NewDashboardHandler()
	c, rec := dashboardContext(t, e, domain.RoleSet{domain.RoleAdmin})

	if err := handler.Board(domain.RoleAdmin)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["board"] != "Admin" || resp["path"] != "/admin" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}
