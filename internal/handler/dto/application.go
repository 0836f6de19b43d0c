package dto

import (
	"time"

	"github.com/hireboard/hireboard/internal/model"
)

// ApplyRequest represents the request body for applying to a job.
type ApplyRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Resume string `json:"resume,omitempty"`
}

// ApplicationResponse represents an application in API responses.
type ApplicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Resume      string    `json:"resume,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
}

// ApplicationListResponse represents a list of applications.
type ApplicationListResponse struct {
	Data  []ApplicationResponse `json:"data"`
	Count int                   `json:"count"`
}

// ToApplicationResponse converts an Application model to its DTO.
func ToApplicationResponse(app *model.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		Name:        app.Name,
		Email:       app.Email,
		Resume:      app.Resume,
		AppliedAt:   app.AppliedAt,
	}
}

// ToApplicationListResponse converts a slice of Application models.
func ToApplicationListResponse(apps []*model.Application) *ApplicationListResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i, app := range apps {
		responses[i] = *ToApplicationResponse(app)
	}
	return &ApplicationListResponse{
		Data:  responses,
		Count: len(responses),
	}
}
