package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/repository"
)

// JobService handles job posting business logic.
type JobService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewJobService creates a new JobService.
func NewJobService(repo *repository.Repository, recorder metrics.Recorder) *JobService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &JobService{
		repo:    repo,
		metrics: recorder,
	}
}

// JobInput defines the mutable fields of a job posting.
// Used by both create and update.
type JobInput struct {
	Title       string
	Description string
	Category    string
	Company     string
	Location    string
	Salary      int64
	Tags        []string
}

// CreateJob validates the fields and persists a new posting owned by the
// employer. posted_on is set here and never changes.
func (s *JobService) CreateJob(ctx context.Context, employerID string, input JobInput) (*model.Job, error) {
	input, verr := validateJob(input)
	if verr != nil {
		return nil, verr
	}

	job := &model.Job{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Company:     input.Company,
		Location:    input.Location,
		Salary:      input.Salary,
		Tags:        input.Tags,
		PostedBy:    employerID,
		PostedOn:    time.Now().UTC(),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.metrics.IncJobCreated()

	return job, nil
}

// GetJob retrieves a job by ID.
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListJobs retrieves jobs matching the optional search and location filters.
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]*model.Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// ListEmployerJobs retrieves the jobs an employer has posted.
func (s *JobService) ListEmployerJobs(ctx context.Context, employerID string) ([]*model.Job, error) {
	return s.repo.ListJobsByPoster(ctx, employerID)
}

// UpdateJob replaces the mutable fields of a job.
// Only the owner may update; posted_by and posted_on are preserved.
func (s *JobService) UpdateJob(ctx context.Context, id, actorID string, input JobInput) (*model.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if !job.IsOwnedBy(actorID) {
		s.metrics.IncForbidden()
		return nil, ErrNotOwner
	}

	input, verr := validateJob(input)
	if verr != nil {
		return nil, verr
	}

	job.Title = input.Title
	job.Description = input.Description
	job.Category = input.Category
	job.Company = input.Company
	job.Location = input.Location
	job.Salary = input.Salary
	job.Tags = input.Tags

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	s.metrics.IncJobUpdated()

	return job, nil
}

// DeleteJob removes a job and, through the cascade constraint, all of its
// applications. Only the owner may delete.
func (s *JobService) DeleteJob(ctx context.Context, id, actorID string) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}

	if !job.IsOwnedBy(actorID) {
		s.metrics.IncForbidden()
		return ErrNotOwner
	}

	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	s.metrics.IncJobDeleted()

	return nil
}

// validateJob checks the submitted job fields and normalizes them.
// An empty category defaults to Software; an unknown one is rejected.
func validateJob(input JobInput) (JobInput, *ValidationError) {
	fields := make(map[string]string)

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Company = strings.TrimSpace(input.Company)
	input.Location = strings.TrimSpace(input.Location)

	if input.Title == "" {
		fields["title"] = "must not be empty"
	}
	if input.Description == "" {
		fields["description"] = "must not be empty"
	}
	if input.Company == "" {
		fields["company"] = "must not be empty"
	}
	if input.Location == "" {
		fields["location"] = "must not be empty"
	}
	if input.Salary <= 0 {
		fields["salary"] = "must be a positive number"
	}

	if input.Category == "" {
		input.Category = model.CategorySoftware
	} else if !model.IsValidCategory(input.Category) {
		fields["category"] = "must be one of the known categories"
	}

	if len(fields) > 0 {
		return input, newValidationError(fields)
	}
	return input, nil
}
