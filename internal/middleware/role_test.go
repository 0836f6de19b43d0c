package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/model"
)

func TestRequireRole_Authorized(t *testing.T) {
	testCases := []struct {
		name     string
		role     model.Role
		required model.Role
	}{
		{
			name:     "employer allows employer routes",
			role:     model.RoleEmployer,
			required: model.RoleEmployer,
		},
		{
			name:     "jobseeker allows jobseeker routes",
			role:     model.RoleJobSeeker,
			required: model.RoleJobSeeker,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authCtx := &model.AuthContext{
				UserID: "user123",
				Role:   tc.role,
			}

			handler := RequireRole(tc.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(auth.ContextWithAuth(req.Context(), authCtx))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
		})
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	testCases := []struct {
		name     string
		role     model.Role
		required model.Role
	}{
		{
			name:     "jobseeker cannot access employer routes",
			role:     model.RoleJobSeeker,
			required: model.RoleEmployer,
		},
		{
			name:     "employer cannot access jobseeker routes",
			role:     model.RoleEmployer,
			required: model.RoleJobSeeker,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authCtx := &model.AuthContext{
				UserID: "user123",
				Role:   tc.role,
			}

			handler := RequireRole(tc.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(auth.ContextWithAuth(req.Context(), authCtx))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
			}
		})
	}
}

func TestRequireRole_NoAuthContext(t *testing.T) {
	handler := RequireEmployer()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestConvenienceMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		middleware func() func(http.Handler) http.Handler
		role       model.Role
	}{
		{"RequireEmployer", RequireEmployer, model.RoleEmployer},
		{"RequireJobSeeker", RequireJobSeeker, model.RoleJobSeeker},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := tc.middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(auth.ContextWithAuth(req.Context(), &model.AuthContext{
				UserID: "user123",
				Role:   tc.role,
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
		})
	}
}
