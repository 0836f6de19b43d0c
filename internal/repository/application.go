package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hireboard/hireboard/internal/model"
)

// Common errors for application repository operations.
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and applicant")
)

// CreateApplication inserts a new application.
// The unique constraint on (job_id, applicant_id) makes this the atomic
// check-and-insert: of two concurrent applies, exactly one row wins and the
// loser gets ErrDuplicateApplication.
func (r *Repository) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (id, job_id, applicant_id, name, email, resume, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.Name,
		app.Email,
		app.Resume,
		app.AppliedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetApplicationByID retrieves an application by its ID.
func (r *Repository) GetApplicationByID(ctx context.Context, id string) (*model.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, name, email, resume, applied_at
		FROM applications
		WHERE id = $1
	`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}

	return app, nil
}

// GetApplicationByJobAndApplicant retrieves the application a seeker filed
// for a given job, if any. Used by the pre-insert duplicate check.
func (r *Repository) GetApplicationByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, name, email, resume, applied_at
		FROM applications
		WHERE job_id = $1 AND applicant_id = $2
	`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, jobID, applicantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application by job and applicant: %w", err)
	}

	return app, nil
}

// ListApplicationsByApplicant retrieves all applications filed by a user,
// most recent first.
func (r *Repository) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, name, email, resume, applied_at
		FROM applications
		WHERE applicant_id = $1
		ORDER BY applied_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListApplicationsByJob retrieves all applications for a job,
// most recent first. Used by employer views.
func (r *Repository) ListApplicationsByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, name, email, resume, applied_at
		FROM applications
		WHERE job_id = $1
		ORDER BY applied_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// scanApplication scans a single row into an Application model.
func scanApplication(row pgx.Row) (*model.Application, error) {
	var app model.Application
	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.Name,
		&app.Email,
		&app.Resume,
		&app.AppliedAt,
	)
	return &app, err
}

// collectApplications drains rows into a slice of applications.
func collectApplications(rows pgx.Rows) ([]*model.Application, error) {
	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}
