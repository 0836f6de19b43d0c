// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hireboard/hireboard/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 771177

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates all tables for tests.
// Down migrations run in reverse order, up migrations in order, so the
// foreign keys between users, jobs and applications always resolve.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	migrations := []string{
		"000001_users",
		"000002_jobs",
		"000003_applications",
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		downPath := filepath.Join(root, "migrations", migrations[i]+".down.sql")
		downSQL, err := os.ReadFile(downPath)
		if err != nil {
			return fmt.Errorf("read down migration %s: %w", migrations[i], err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", migrations[i], err)
		}
	}

	for _, name := range migrations {
		upPath := filepath.Join(root, "migrations", name+".up.sql")
		upSQL, err := os.ReadFile(upPath)
		if err != nil {
			return fmt.Errorf("read up migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
			return fmt.Errorf("apply up migration %s: %w", name, err)
		}
	}

	return nil
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           UniqueID("user"),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: fmt.Sprintf("hash-%d", now.UnixNano()),
		CreatedAt:    now,
	}
}

// NewTestProfile creates a profile for a user with the given role.
func NewTestProfile(t testing.TB, userID string, role model.Role) *model.Profile {
	t.Helper()
	return &model.Profile{
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestJob creates a test job posting with sensible defaults.
func NewTestJob(t testing.TB, postedBy string) *model.Job {
	t.Helper()
	return &model.Job{
		ID:          UniqueID("job"),
		Title:       "Backend Engineer",
		Description: "Build and run the job board backend.",
		Category:    model.CategorySoftware,
		Company:     "Acme",
		Location:    "Remote",
		Salary:      120000,
		Tags:        []string{"go", "postgres"},
		PostedBy:    postedBy,
		PostedOn:    time.Now().UTC(),
	}
}

// NewTestApplication creates a test application with sensible defaults.
func NewTestApplication(t testing.TB, jobID, applicantID string) *model.Application {
	t.Helper()
	return &model.Application{
		ID:          UniqueID("app"),
		JobID:       jobID,
		ApplicantID: applicantID,
		Name:        "Test Applicant",
		Email:       "applicant@example.com",
		AppliedAt:   time.Now().UTC(),
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
