// Package model defines domain entities for the application.
package model

import "time"

// Session holds the server-side state of a login session.
// The role is stored alongside the user ID because roles are immutable
// after signup, so every request can skip the profile lookup.
type Session struct {
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AuthContext holds the authenticated principal for a request.
// This is injected into the request context by the session middleware.
type AuthContext struct {
	UserID string
	Role   Role
}
