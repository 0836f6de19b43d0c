package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/repository"
)

// ApplicationService handles job application business logic.
type ApplicationService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(repo *repository.Repository, recorder metrics.Recorder) *ApplicationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ApplicationService{
		repo:    repo,
		metrics: recorder,
	}
}

// ApplyInput defines input for applying to a job.
type ApplyInput struct {
	JobID       string
	ApplicantID string
	Name        string
	Email       string
	Resume      string // opaque file reference, optional
}

// Apply files an application for a job.
// A pre-check catches the common resubmit case; the unique constraint on
// (job_id, applicant_id) is the backstop for concurrent double-submits.
// In both cases the existing application is returned with ErrAlreadyApplied
// so callers can point the client at it.
func (s *ApplicationService) Apply(ctx context.Context, input ApplyInput) (*model.Application, error) {
	if verr := validateApply(input); verr != nil {
		return nil, verr
	}

	if _, err := s.repo.GetJobByID(ctx, input.JobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetApplicationByJobAndApplicant(ctx, input.JobID, input.ApplicantID)
	if err == nil {
		s.metrics.IncApplicationDuplicate()
		return existing, ErrAlreadyApplied
	}
	if !errors.Is(err, repository.ErrApplicationNotFound) {
		return nil, err
	}

	app := &model.Application{
		ID:          ulid.Make().String(),
		JobID:       input.JobID,
		ApplicantID: input.ApplicantID,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Resume:      input.Resume,
		AppliedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			// Lost the race against a concurrent apply; surface the winner.
			s.metrics.IncApplicationDuplicate()
			winner, lookupErr := s.repo.GetApplicationByJobAndApplicant(ctx, input.JobID, input.ApplicantID)
			if lookupErr != nil {
				return nil, fmt.Errorf("look up winning application: %w", lookupErr)
			}
			return winner, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.metrics.IncApplicationCreated()

	return app, nil
}

// GetApplication retrieves a single application.
// Only the applicant and the owner of the job may see it.
func (s *ApplicationService) GetApplication(ctx context.Context, id, actorID string) (*model.Application, error) {
	app, err := s.repo.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if app.ApplicantID == actorID {
		return app, nil
	}

	job, err := s.repo.GetJobByID(ctx, app.JobID)
	if err == nil && job.IsOwnedBy(actorID) {
		return app, nil
	}

	s.metrics.IncForbidden()
	return nil, ErrNotOwner
}

// ListMyApplications returns the applications a user has filed,
// deduplicated to the most recent one per job, most recent first.
// Deduplication is display-only; underlying rows are untouched.
func (s *ApplicationService) ListMyApplications(ctx context.Context, applicantID string) ([]*model.Application, error) {
	apps, err := s.repo.ListApplicationsByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return dedupeLatestPerJob(apps), nil
}

// ListApplicantApplications returns the raw application history for a user,
// most recent first. Used by the job seeker dashboard.
func (s *ApplicationService) ListApplicantApplications(ctx context.Context, applicantID string) ([]*model.Application, error) {
	return s.repo.ListApplicationsByApplicant(ctx, applicantID)
}

// ListJobApplications returns all applications for a job.
// Only the owner of the job may list them.
func (s *ApplicationService) ListJobApplications(ctx context.Context, jobID, actorID string) ([]*model.Application, error) {
	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if !job.IsOwnedBy(actorID) {
		s.metrics.IncForbidden()
		return nil, ErrNotOwner
	}

	return s.repo.ListApplicationsByJob(ctx, jobID)
}

// dedupeLatestPerJob collapses applications down to the newest one per job.
// Sort descending by applied_at, then keep the first occurrence per job,
// preserving that sorted order in the output.
func dedupeLatestPerJob(apps []*model.Application) []*model.Application {
	sorted := make([]*model.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].AppliedAt.Equal(sorted[j].AppliedAt) {
			return sorted[i].AppliedAt.After(sorted[j].AppliedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	seen := make(map[string]bool, len(sorted))
	result := make([]*model.Application, 0, len(sorted))
	for _, app := range sorted {
		if seen[app.JobID] {
			continue
		}
		seen[app.JobID] = true
		result = append(result, app)
	}

	return result
}

// validateApply checks the submitted application fields.
func validateApply(input ApplyInput) *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "must not be empty"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "must not be empty"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}
