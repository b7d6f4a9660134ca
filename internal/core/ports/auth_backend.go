package ports

import (
	"context"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

// AuthBackend is the student-management REST API in its role as credential
// authority. The gateway treats it as opaque: it only needs the returned
// token and role list.
type AuthBackend interface {
	SignIn(ctx context.Context, in domain.SignInInput) (*domain.SignInResult, error)
	SignOut(ctx context.Context, token string) error
	Roles(ctx context.Context) (domain.RoleSet, error)
}
