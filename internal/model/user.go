// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// Credentials live here; the role lives on the Profile.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}
