package repository

import (
	"context"
	"testing"

	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/testutil"
)

// newTestRepository connects to DATABASE_URL (skipping when unset), grabs the
// advisory lock and resets the schema so each test starts clean.
func newTestRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect to database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release db lock: %v", err)
		}
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}

// seedUser inserts a user with the given role and returns it.
func seedUser(t *testing.T, ctx context.Context, repo *Repository, username string, role model.Role) *model.User {
	t.Helper()

	user := testutil.NewTestUser(t, username)
	profile := testutil.NewTestProfile(t, user.ID, role)
	if err := repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}
