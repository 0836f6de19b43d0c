package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/hireboard/hireboard/internal/model"
)

// Common errors for job repository operations.
var (
	ErrJobNotFound = errors.New("job not found")
)

// JobFilter defines filters for listing jobs.
// Both filters are case-insensitive substring matches; empty values
// impose no constraint.
type JobFilter struct {
	Search   string // matched against title OR company
	Location string
}

// CreateJob inserts a new job posting into the database.
func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (id, title, description, category, company, location, salary, tags, posted_by, posted_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		job.Company,
		job.Location,
		job.Salary,
		pq.Array(job.Tags),
		job.PostedBy,
		job.PostedOn,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a job by its ID.
func (r *Repository) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	query := `
		SELECT id, title, description, category, company, location, salary, tags, posted_by, posted_on
		FROM jobs
		WHERE id = $1
	`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return job, nil
}

// ListJobs retrieves jobs matching the filter in stable insertion order.
func (r *Repository) ListJobs(ctx context.Context, filter JobFilter) ([]*model.Job, error) {
	query := `
		SELECT id, title, description, category, company, location, salary, tags, posted_by, posted_on
		FROM jobs
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE '%%' || $%d || '%%' OR company ILIKE '%%' || $%d || '%%')", argIndex, argIndex)
		args = append(args, filter.Search)
		argIndex++
	}

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE '%%' || $%d || '%%'", argIndex)
		args = append(args, filter.Location)
		argIndex++
	}

	query += " ORDER BY posted_on ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListJobsByPoster retrieves all jobs created by an employer,
// most recent first. Used by the employer dashboard.
func (r *Repository) ListJobsByPoster(ctx context.Context, posterID string) ([]*model.Job, error) {
	query := `
		SELECT id, title, description, category, company, location, salary, tags, posted_by, posted_on
		FROM jobs
		WHERE posted_by = $1
		ORDER BY posted_on DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, posterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by poster: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateJob updates a job's mutable fields.
// posted_by and posted_on are never touched.
func (r *Repository) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, category = $4, company = $5, location = $6, salary = $7, tags = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		job.Company,
		job.Location,
		job.Salary,
		pq.Array(job.Tags),
	)

	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteJob removes a job. Dependent applications are removed by the
// ON DELETE CASCADE constraint in the same statement.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// scanJob scans a single row into a Job model.
func scanJob(row pgx.Row) (*model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Company,
		&job.Location,
		&job.Salary,
		pq.Array(&job.Tags),
		&job.PostedBy,
		&job.PostedOn,
	)
	return &job, err
}

// collectJobs drains rows into a slice of jobs.
func collectJobs(rows pgx.Rows) ([]*model.Job, error) {
	var jobs []*model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}
