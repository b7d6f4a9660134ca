package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity actions recorded for the audit trail.
const (
	ActionLogin       = "login"
	ActionLoginFailed = "login_failed"
	ActionLogout      = "logout"
	ActionExpired     = "session_expired"
	ActionDenied      = "access_denied"
)

// ActivityEntry is one row in the audit trail of authentication and
// authorization events.
type ActivityEntry struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// NewActivity builds an entry stamped with a fresh ID and the current time.
func NewActivity(username, action, detail string) ActivityEntry {
	return ActivityEntry{
		ID:       uuid.NewString(),
		Username: username,
		Action:   action,
		Detail:   detail,
		At:       time.Now().UTC(),
	}
}
