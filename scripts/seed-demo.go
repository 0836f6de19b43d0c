package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/repository"
)

type seededAccount struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type output struct {
	Employer seededAccount `json:"employer"`
	Seeker   seededAccount `json:"seeker"`
	JobIDs   []string      `json:"job_ids"`
}

// Seeds a demo employer, a demo job seeker and a couple of postings so a
// fresh environment has something to browse.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		password    = flag.String("password", "hireboard-demo", "Password for both demo accounts")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	employerID, err := ensureAccount(ctx, repo, "demo-employer", model.RoleEmployer, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	seekerID, err := ensureAccount(ctx, repo, "demo-seeker", model.RoleJobSeeker, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	jobs := []*model.Job{
		{
			ID:          ulid.Make().String(),
			Title:       "Backend Engineer",
			Description: "Design and run the job board API.",
			Category:    model.CategorySoftware,
			Company:     "Hireboard",
			Location:    "Remote",
			Salary:      130000,
			Tags:        []string{"go", "postgres", "redis"},
			PostedBy:    employerID,
			PostedOn:    time.Now().UTC(),
		},
		{
			ID:          ulid.Make().String(),
			Title:       "Data Analyst",
			Description: "Report on hiring funnel metrics.",
			Category:    model.CategoryData,
			Company:     "Hireboard",
			Location:    "Berlin",
			Salary:      85000,
			Tags:        []string{"sql"},
			PostedBy:    employerID,
			PostedOn:    time.Now().UTC(),
		},
	}

	jobIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if err := repo.CreateJob(ctx, job); err != nil {
			fmt.Fprintln(os.Stderr, "create job:", err)
			os.Exit(1)
		}
		jobIDs = append(jobIDs, job.ID)
	}

	out := output{
		Employer: seededAccount{UserID: employerID, Username: "demo-employer", Role: string(model.RoleEmployer), Password: *password},
		Seeker:   seededAccount{UserID: seekerID, Username: "demo-seeker", Role: string(model.RoleJobSeeker), Password: *password},
		JobIDs:   jobIDs,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

// ensureAccount creates the demo account if it does not already exist.
func ensureAccount(ctx context.Context, repo *repository.Repository, username string, role model.Role, password string) (string, error) {
	existing, err := repo.GetUserByUsername(ctx, username)
	if err == nil {
		profile, perr := repo.GetProfileByUserID(ctx, existing.ID)
		if perr != nil {
			return "", fmt.Errorf("load profile for %s: %w", username, perr)
		}
		if profile.Role != role {
			return "", fmt.Errorf("user %s exists with role %s, wanted %s", username, profile.Role, role)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("look up %s: %w", username, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		Email:        username + "@hireboard.local",
		PasswordHash: hash,
		CreatedAt:    now,
	}
	profile := &model.Profile{
		UserID:    user.ID,
		Role:      role,
		CreatedAt: now,
	}

	if err := repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		return "", fmt.Errorf("create %s: %w", username, err)
	}
	return user.ID, nil
}
