package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a bearer token to one user until ExpiresAt.
// Expired rows are rejected on use, never swept by the request path.
type Session struct {
	BaseSimple
	UserID       uuid.UUID `db:"user_id"`
	SessionToken string    `db:"session_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// ActiveAt reports whether the session is still usable at now; expiry equal to now is expired
func (s *Session) ActiveAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
