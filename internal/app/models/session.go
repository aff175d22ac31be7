package models

import "time"

// Session is a server-side login session. TokenJSON holds the serialized
// OAuth credential set for the signed-in user; external calls are always made
// with these delegated credentials, never a process-wide one.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	TokenJSON []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
