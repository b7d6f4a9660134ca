package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/infrastructure/db/memory"
)

func mustToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestEvaluate_NonStrict(t *testing.T) {
	tests := []struct {
		name     string
		roles    domain.RoleSet
		required domain.RoleSet
		want     domain.Outcome
	}{
		{"admin enters moderator route", domain.RoleSet{domain.RoleAdmin}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRender},
		{"admin enters student route", domain.RoleSet{domain.RoleAdmin}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"admin enters admin route", domain.RoleSet{domain.RoleAdmin}, domain.RoleSet{domain.RoleAdmin}, domain.OutcomeRender},
		{"moderator enters moderator route", domain.RoleSet{domain.RoleModerator}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRender},
		{"moderator enters student route", domain.RoleSet{domain.RoleModerator}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"moderator denied admin route", domain.RoleSet{domain.RoleModerator}, domain.RoleSet{domain.RoleAdmin}, domain.OutcomeRedirectUnauthorized},
		{"student denied moderator route", domain.RoleSet{domain.RoleStudent}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRedirectUnauthorized},
		{"student enters student route", domain.RoleSet{domain.RoleStudent}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"user enters student route", domain.RoleSet{domain.RoleUser}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"student enters user route", domain.RoleSet{domain.RoleStudent}, domain.RoleSet{domain.RoleUser}, domain.OutcomeRender},
		{"admin and moderator enter student route", domain.RoleSet{domain.RoleAdmin, domain.RoleModerator}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"unknown role denied", domain.RoleSet{"ROLE_GUEST"}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRedirectUnauthorized},
		{"empty roles denied", domain.RoleSet{}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRedirectUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.roles, domain.RoutePolicy{RequiredRoles: tt.required})
			if got != tt.want {
				t.Fatalf("Evaluate(%v, required=%v) = %v, want %v", tt.roles, tt.required, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Strict(t *testing.T) {
	tests := []struct {
		name     string
		roles    domain.RoleSet
		required domain.RoleSet
		want     domain.Outcome
	}{
		{"exact match renders", domain.RoleSet{domain.RoleStudent}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
		{"student denied moderator route", domain.RoleSet{domain.RoleStudent}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRedirectUnauthorized},
		{"admin gets no cascade", domain.RoleSet{domain.RoleAdmin}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRedirectUnauthorized},
		{"any match suffices", domain.RoleSet{domain.RoleStudent, domain.RoleModerator}, domain.RoleSet{domain.RoleModerator}, domain.OutcomeRender},
		{"user satisfies student requirement", domain.RoleSet{domain.RoleUser}, domain.RoleSet{domain.RoleStudent}, domain.OutcomeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.roles, domain.RoutePolicy{RequiredRoles: tt.required, Strict: true})
			if got != tt.want {
				t.Fatalf("Evaluate(%v, strict required=%v) = %v, want %v", tt.roles, tt.required, got, tt.want)
			}
		})
	}
}

func TestGuard_Decide_NoSession(t *testing.T) {
	stores := memory.NewSessionStores()
	guard := newTestGuard(t, stores)

	outcome, sess := guard.Decide(context.Background(), stores.ForID("sid"), "/admin", domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleAdmin}})
	if outcome != domain.OutcomeRedirectLogin {
		t.Fatalf("expected redirect_login, got %v", outcome)
	}
	if sess != nil {
		t.Fatalf("expected nil session")
	}
}

func TestGuard_Decide_ExpiredSessionClearsStore(t *testing.T) {
	stores := memory.NewSessionStores()
	guard := newTestGuard(t, stores)

	store := stores.ForID("sid")
	sess := &domain.Session{
		Username: "alice",
		Roles:    domain.RoleSet{domain.RoleAdmin},
		Token:    mustToken(t, time.Now().Add(-time.Hour)),
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	outcome, _ := guard.Decide(context.Background(), store, "/admin", domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleAdmin}})
	if outcome != domain.OutcomeRedirectLogin {
		t.Fatalf("expected redirect_login, got %v", outcome)
	}

	reloaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded != nil {
		t.Fatalf("expected expired session cleared, got %+v", reloaded)
	}
}

func TestGuard_Decide_RecordsDenial(t *testing.T) {
	stores := memory.NewSessionStores()
	activity := &stubActivityLog{}
	sessions := NewSessionService(&stubBackend{}, activity, zerolog.Nop(), time.Second)
	guard := NewGuard(sessions, activity, zerolog.Nop())

	store := stores.ForID("sid")
	sess := &domain.Session{
		Username: "bob",
		Roles:    domain.RoleSet{domain.RoleStudent},
		Token:    mustToken(t, time.Now().Add(time.Hour)),
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	outcome, _ := guard.Decide(context.Background(), store, "/moderator", domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleModerator}})
	if outcome != domain.OutcomeRedirectUnauthorized {
		t.Fatalf("expected redirect_unauthorized, got %v", outcome)
	}

	entries := activity.entriesByAction(domain.ActionDenied)
	if len(entries) != 1 {
		t.Fatalf("expected one denial entry, got %d", len(entries))
	}
	if entries[0].Username != "bob" || entries[0].Detail != "/moderator" {
		t.Fatalf("unexpected denial entry: %+v", entries[0])
	}
}

func newTestGuard(t *testing.T, stores *memory.SessionStores) *Guard {
	t.Helper()
	sessions := NewSessionService(&stubBackend{}, &stubActivityLog{}, zerolog.Nop(), time.Second)
	return NewGuard(sessions, &stubActivityLog{}, zerolog.Nop())
}
