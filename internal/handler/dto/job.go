package dto

import (
	"time"

	"github.com/hireboard/hireboard/internal/model"
)

// JobRequest represents the request body for creating or updating a job.
type JobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      int64    `json:"salary"`
	Tags        []string `json:"tags,omitempty"`
}

// JobResponse represents a job posting in API responses.
type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      int64     `json:"salary"`
	Tags        []string  `json:"tags,omitempty"`
	PostedBy    string    `json:"posted_by"`
	PostedOn    time.Time `json:"posted_on"`
}

// JobListResponse represents a list of job postings.
type JobListResponse struct {
	Data  []JobResponse `json:"data"`
	Count int           `json:"count"`
}

// ToJobResponse converts a Job model to JobResponse DTO.
func ToJobResponse(job *model.Job) *JobResponse {
	return &JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		Tags:        job.Tags,
		PostedBy:    job.PostedBy,
		PostedOn:    job.PostedOn,
	}
}

// ToJobListResponse converts a slice of Job models to JobListResponse.
func ToJobListResponse(jobs []*model.Job) *JobListResponse {
	responses := make([]JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = *ToJobResponse(job)
	}
	return &JobListResponse{
		Data:  responses,
		Count: len(responses),
	}
}
