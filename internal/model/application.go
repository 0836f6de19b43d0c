// Package model defines domain entities for the application.
package model

import "time"

// Application links a job seeker to a job they applied for.
// At most one application exists per (job, applicant) pair; the database
// enforces this with a unique constraint.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Resume      string    `json:"resume,omitempty"` // opaque file reference
	AppliedAt   time.Time `json:"applied_at"`
}
