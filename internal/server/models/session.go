package models

import "time"

// Session is a server-side record of a successful login or registration.
// The identity fields are copied at creation and never re-read from users.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity returns the snapshot carried by the session.
func (s *Session) Identity() Identity {
	return Identity{Email: s.Email, Name: s.Name, Lastname: s.Lastname, Role: s.Role}
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
