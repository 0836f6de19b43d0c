package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/metrics"
	"github.com/hireboard/hireboard/internal/model"
	"github.com/hireboard/hireboard/internal/repository"
)

const minPasswordLength = 8

// AccountService handles signup, login and logout.
type AccountService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.Repository, cache *cache.Cache, sessionTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:       repo,
		cache:      cache,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// IssuedSession pairs a plaintext session token with its server-side state.
// The token is handed to the client once; only its hash is stored.
type IssuedSession struct {
	Token   string
	Session *model.Session
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Signup creates a user and their role profile in one transaction, then
// logs the new account in. An empty role defaults to jobseeker.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.User, *IssuedSession, error) {
	if verr := validateSignup(input); verr != nil {
		return nil, nil, verr
	}

	role, ok := model.ParseRole(input.Role)
	if !ok {
		return nil, nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		CreatedAt:    now,
	}
	profile := &model.Profile{
		UserID:    user.ID,
		Role:      role,
		CreatedAt: now,
	}

	if err := s.repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("create account: %w", err)
	}

	s.metrics.IncSignup()

	issued, err := s.issueSession(ctx, user.ID, role)
	if err != nil {
		return nil, nil, err
	}

	return user, issued, nil
}

// Login verifies credentials and issues a new session.
// Unknown usernames and wrong passwords return the same error so login
// cannot be used to enumerate accounts.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.User, *IssuedSession, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, nil, ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("look up profile: %w", err)
	}

	s.metrics.IncLogin()

	issued, err := s.issueSession(ctx, user.ID, profile.Role)
	if err != nil {
		return nil, nil, err
	}

	return user, issued, nil
}

// Logout revokes the session for the given token.
// Revocation is immediate because sessions live only in the store.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.DeleteSession(ctx, auth.HashToken(token))
}

// GetUser retrieves the account for an authenticated user.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SessionTTL returns the configured session lifetime.
func (s *AccountService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// issueSession mints a token and stores the session state under its hash.
// The role is embedded in the session; roles never change after signup.
func (s *AccountService) issueSession(ctx context.Context, userID string, role model.Role) (*IssuedSession, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.cache.SetSession(ctx, auth.HashToken(token), session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &IssuedSession{Token: token, Session: session}, nil
}

// validateSignup checks the submitted signup fields.
func validateSignup(input SignupInput) *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "must not be empty"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "must not be empty"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(input.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}
