// Package model defines domain entities for the application.
package model

import "time"

// Role determines which side of the board a user is on.
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "jobseeker"
)

// ValidRoles contains all roles a user may sign up with.
var ValidRoles = []Role{RoleEmployer, RoleJobSeeker}

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

// ParseRole converts a string to a Role.
// An empty string yields the jobseeker default used at signup.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployer:
		return RoleEmployer, true
	case RoleJobSeeker, Role(""):
		return RoleJobSeeker, true
	default:
		return "", false
	}
}

// Profile maps a user to their role.
// Exactly one profile exists per user and the role never changes after signup.
type Profile struct {
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
