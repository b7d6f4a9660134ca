package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// SessionService orchestrates the session lifecycle: establishing a session
// against the backend, reading it back (with expiry enforcement), and
// tearing it down. Storage and backend hiccups degrade to "no session";
// authorization fails closed, navigation never crashes.
type SessionService struct {
	backend  ports.AuthBackend
	activity ports.ActivityLog
	log      zerolog.Logger

	signOutTimeout time.Duration
}

func NewSessionService(backend ports.AuthBackend, activity ports.ActivityLog, log zerolog.Logger, signOutTimeout time.Duration) *SessionService {
	if signOutTimeout <= 0 {
		signOutTimeout = 3 * time.Second
	}
	return &SessionService{
		backend:        backend,
		activity:       activity,
		log:            log,
		signOutTimeout: signOutTimeout,
	}
}

// Current returns the live session from the store, or nil when there is
// none. An expired session is cleared on sight (logout-on-expiry) and
// reported as absent. Storage errors are logged and degrade to nil.
func (s *SessionService) Current(ctx context.Context, store ports.SessionStore) *domain.Session {
	sess, err := store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session load failed, treating as logged out")
		return nil
	}
	if sess == nil {
		return nil
	}
	if sess.Expired(time.Now()) {
		if err := store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear expired session")
		}
		s.record(ctx, domain.NewActivity(sess.Username, domain.ActionExpired, ""))
		return nil
	}
	return sess
}

// SignIn forwards credentials to the backend and, on success, persists the
// established session in the given store. MFA challenges and
// already-logged-in conflicts are passed through to the caller unsaved.
func (s *SessionService) SignIn(ctx context.Context, store ports.SessionStore, in domain.SignInInput) (*domain.SignInResult, error) {
	res, err := s.backend.SignIn(ctx, in)
	if err != nil {
		s.record(ctx, domain.NewActivity(in.Username, domain.ActionLoginFailed, err.Error()))
		return nil, err
	}
	if res.MFARequired || res.AlreadyLoggedIn {
		return res, nil
	}

	sess := res.Session
	if len(sess.Roles) == 0 {
		sess.Roles = domain.RoleSet{domain.RoleUser}
	}
	if err := store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.record(ctx, domain.NewActivity(sess.Username, domain.ActionLogin, ""))
	return res, nil
}

// SignOut clears the local session unconditionally and then notifies the
// backend fire-and-forget: the notification runs on its own short-lived
// context and its failure is logged, never surfaced. SignOut itself cannot
// fail from the caller's point of view.
func (s *SessionService) SignOut(ctx context.Context, store ports.SessionStore) {
	sess, err := store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session load failed during sign-out")
	}

	if err := store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear session during sign-out")
	}

	username := ""
	if sess != nil {
		username = sess.Username
	}
	s.record(ctx, domain.NewActivity(username, domain.ActionLogout, ""))

	if sess == nil || sess.Token == "" {
		return
	}
	token := sess.Token
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), s.signOutTimeout)
		defer cancel()
		if err := s.backend.SignOut(notifyCtx, token); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("backend sign-out notification failed")
		}
	}()
}

func (s *SessionService) record(ctx context.Context, entry domain.ActivityEntry) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", entry.Action).Msg("activity record failed")
	}
}
