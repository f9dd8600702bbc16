package entities

import "time"

// Session is a server-side login record keyed by an opaque token delivered
// via cookie. Lifetime is sliding: ExpiresAt is pushed forward on use.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its deadline.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
