package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/testutil"
)

func TestRepository_CreateApplication_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)
	seeker := seedUser(t, ctx, repo, "seeker1", model.RoleJobSeeker)

	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	app := testutil.NewTestApplication(t, job.ID, seeker.ID)
	if err := repo.CreateApplication(ctx, app); err != nil {
		t.Fatalf("create application: %v", err)
	}

	// Same (job, applicant) pair must be rejected by the unique constraint.
	dup := testutil.NewTestApplication(t, job.ID, seeker.ID)
	if err := repo.CreateApplication(ctx, dup); !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}

	apps, err := repo.ListApplicationsByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected exactly one application row, got %d", len(apps))
	}
}

func TestRepository_CreateApplication_ConcurrentApplies(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)
	seeker := seedUser(t, ctx, repo, "seeker1", model.RoleJobSeeker)

	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	const attempts = 8
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			app := testutil.NewTestApplication(t, job.ID, seeker.ID)
			app.ID = testutil.UniqueID("race")
			results <- repo.CreateApplication(ctx, app)
		}()
	}

	var successes, duplicates int
	for i := 0; i < attempts; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicateApplication):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly one successful apply, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicate errors, got %d", attempts-1, duplicates)
	}
}

func TestRepository_GetApplicationByJobAndApplicant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)
	seeker := seedUser(t, ctx, repo, "seeker1", model.RoleJobSeeker)

	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := repo.GetApplicationByJobAndApplicant(ctx, job.ID, seeker.ID); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}

	app := testutil.NewTestApplication(t, job.ID, seeker.ID)
	if err := repo.CreateApplication(ctx, app); err != nil {
		t.Fatalf("create application: %v", err)
	}

	found, err := repo.GetApplicationByJobAndApplicant(ctx, job.ID, seeker.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if found.ID != app.ID {
		t.Errorf("expected application %q, got %q", app.ID, found.ID)
	}
}

func TestRepository_ListApplicationsByApplicant_Order(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)
	seeker := seedUser(t, ctx, repo, "seeker1", model.RoleJobSeeker)

	now := time.Now().UTC()
	var jobs []*model.Job
	for i := 0; i < 3; i++ {
		job := testutil.NewTestJob(t, employer.ID)
		job.ID = testutil.UniqueID("job")
		if err := repo.CreateJob(ctx, job); err != nil {
			t.Fatalf("create job %d: %v", i, err)
		}
		jobs = append(jobs, job)
	}

	// Oldest first in insertion, newest first expected in listing.
	for i, job := range jobs {
		app := testutil.NewTestApplication(t, job.ID, seeker.ID)
		app.AppliedAt = now.Add(time.Duration(i) * time.Minute)
		if err := repo.CreateApplication(ctx, app); err != nil {
			t.Fatalf("create application %d: %v", i, err)
		}
	}

	apps, err := repo.ListApplicationsByApplicant(ctx, seeker.ID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3 applications, got %d", len(apps))
	}
	for i := 1; i < len(apps); i++ {
		if apps[i].AppliedAt.After(apps[i-1].AppliedAt) {
			t.Errorf("applications not sorted most-recent-first at index %d", i)
		}
	}
}
