package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/testutil"
)

func TestRepository_CreateAndGetJob(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)

	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	loaded, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job by ID: %v", err)
	}
	if loaded.Title != job.Title {
		t.Errorf("expected title %q, got %q", job.Title, loaded.Title)
	}
	if loaded.PostedBy != employer.ID {
		t.Errorf("expected posted_by %q, got %q", employer.ID, loaded.PostedBy)
	}
	if len(loaded.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(loaded.Tags))
	}
}

func TestRepository_ListJobs_Filters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)

	backend := testutil.NewTestJob(t, employer.ID)
	backend.Title = "Backend Engineer"
	backend.Company = "Acme"
	backend.Location = "Remote"
	if err := repo.CreateJob(ctx, backend); err != nil {
		t.Fatalf("create backend job: %v", err)
	}

	design := testutil.NewTestJob(t, employer.ID)
	design.Title = "Product Designer"
	design.Company = "Initech"
	design.Location = "Berlin"
	design.Category = model.CategoryDesign
	if err := repo.CreateJob(ctx, design); err != nil {
		t.Fatalf("create design job: %v", err)
	}

	tests := []struct {
		name    string
		filter  JobFilter
		wantIDs []string
	}{
		{"no filter returns all", JobFilter{}, []string{backend.ID, design.ID}},
		{"search matches title", JobFilter{Search: "backend"}, []string{backend.ID}},
		{"search matches company", JobFilter{Search: "initech"}, []string{design.ID}},
		{"location filter", JobFilter{Location: "remote"}, []string{backend.ID}},
		{"search and location", JobFilter{Search: "Backend", Location: "Remote"}, []string{backend.ID}},
		{"no match", JobFilter{Search: "nomatch"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.ListJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list jobs: %v", err)
			}
			if len(jobs) != len(tt.wantIDs) {
				t.Fatalf("expected %d jobs, got %d", len(tt.wantIDs), len(jobs))
			}
			for i, id := range tt.wantIDs {
				if jobs[i].ID != id {
					t.Errorf("job %d: expected ID %q, got %q", i, id, jobs[i].ID)
				}
			}
		})
	}
}

func TestRepository_UpdateJob_PreservesOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	employer := seedUser(t, ctx, repo, "employer1", model.RoleEmployer)

	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	job.Title = "Staff Backend Engineer"
	job.Salary = 150000
	job.Tags = []string{"go"}
	if err := repo.UpdateJob(ctx, job); err != nil {
		t.Fatalf("update job: %v", err)
	}

	loaded, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if loaded.Title != "Staff Backend Engineer" {
		t.Errorf("expected updated title, got %q", loaded.Title)
	}
	if loaded.Salary != 150000 {
		t.Errorf("expected updated salary, got %d", loaded.Salary)
	}
	if loaded.PostedBy != employer.ID {
		t.Errorf("posted_by changed: %q", loaded.PostedBy)
	}
	if !loaded.PostedOn.Equal(job.PostedOn) {
		t.Errorf("posted_on changed: %v", loaded.PostedOn)
	}
}

func TestRepository_DeleteJob_CascadesApplications(t *testing.T) {
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

	if err := repo.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	if _, err := repo.GetJobByID(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	apps, err := repo.ListApplicationsByJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("expected cascade to remove applications, found %d", len(apps))
	}
}

func TestRepository_DeleteJob_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if err := repo.DeleteJob(ctx, "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
