package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no active session")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrLoginConflict = errors.New("already logged in elsewhere")
var ErrForbidden = errors.New("access forbidden")
var ErrBackendUnavailable = errors.New("authentication backend unavailable")

// Tokens shorter than this cannot possibly be real credentials and are
// treated as invalid outright instead of fail-open.
const minTokenLength = 10

// Session is the single source of truth for "who is logged in" on one
// client context. The token is an opaque bearer credential issued by the
// backend; it is only ever inspected for a best-effort expiry check.
type Session struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Roles    RoleSet `json:"roles"`
	Token    string  `json:"token"`
	Avatar   *string `json:"avatar"`
}

// Encode serialises the session for persistence.
func (s *Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSession deserialises a persisted session record, tolerating the
// heterogeneous role shapes older records may carry. Roles are normalized;
// a record with no roles at all defaults to ROLE_USER so the account still
// gets the baseline landing experience.
func DecodeSession(data []byte) (*Session, error) {
	var raw struct {
		ID       int64   `json:"id"`
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Roles    any     `json:"roles"`
		Token    string  `json:"token"`
		Avatar   *string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := &Session{
		ID:       raw.ID,
		Username: raw.Username,
		Email:    raw.Email,
		Token:    raw.Token,
		Avatar:   raw.Avatar,
	}
	if raw.Roles == nil {
		s.Roles = RoleSet{RoleUser}
	} else {
		s.Roles = Normalize(raw.Roles)
	}
	return s, nil
}

// Expired reports whether the session's token is no longer usable.
//
// The check is best-effort: when the token looks like a three-part signed
// token its exp claim is decoded without signature verification (the
// backend is the authority, we only want to avoid presenting a token we
// already know is stale) and compared against now. A token that does not
// decode, or carries no exp claim, is NOT considered expired; only a
// missing or implausibly short token fails closed.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || len(s.Token) < minTokenLength {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
