// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// Job categories offered on the board.
const (
	CategorySoftware  = "Software"
	CategoryData      = "Data"
	CategoryCloud     = "Cloud"
	CategoryDevops    = "Devops"
	CategoryMarketing = "Marketing"
	CategoryDesign    = "Design"
	CategorySales     = "Sales"
	CategoryHR        = "HR"
	CategoryFinance   = "Finance"
)

// ValidCategories contains all valid job category values.
var ValidCategories = []string{
	CategorySoftware,
	CategoryData,
	CategoryCloud,
	CategoryDevops,
	CategoryMarketing,
	CategoryDesign,
	CategorySales,
	CategoryHR,
	CategoryFinance,
}

// IsValidCategory checks if a category is one of the known values.
func IsValidCategory(category string) bool {
	return slices.Contains(ValidCategories, category)
}

// Job represents a job posting owned by the employer who created it.
type Job struct {
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

// IsOwnedBy reports whether the given user created this job.
// Only the owner may edit or delete a posting.
func (j *Job) IsOwnedBy(userID string) bool {
	return j.PostedBy == userID
}
