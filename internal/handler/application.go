package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/handler/dto"
	"github.com/hireboard/hireboard/internal/service"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	svc    *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		svc:    svc,
		logger: logger,
	}
}

// Apply handles POST /api/v1/jobs/{id}/apply.
// A repeat application does not create a row; the response redirects to
// the existing application with 303 See Other.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	var req dto.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	applicantID := auth.UserIDFromContext(r.Context())

	app, err := h.svc.Apply(r.Context(), service.ApplyInput{
		JobID:       jobID,
		ApplicantID: applicantID,
		Name:        req.Name,
		Email:       req.Email,
		Resume:      req.Resume,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyApplied) {
			h.logger.Info("duplicate_application",
				"job_id", jobID,
				"applicant_id", applicantID,
				"application_id", app.ID,
			)
			w.Header().Set("Location", "/api/v1/applications/"+app.ID)
			writeJSON(w, http.StatusSeeOther, dto.ToApplicationResponse(app))
			return
		}
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("application_created",
		"application_id", app.ID,
		"job_id", jobID,
		"applicant_id", applicantID,
	)

	writeJSON(w, http.StatusCreated, dto.ToApplicationResponse(app))
}

// Get handles GET /api/v1/applications/{id}.
// Visible to the applicant and to the owner of the job.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Application ID is required")
		return
	}

	app, err := h.svc.GetApplication(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// MyApplications handles GET /api/v1/my/applications.
// Returns one application per job, the most recent, newest first.
func (h *ApplicationHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListMyApplications(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationListResponse(apps))
}

// Dashboard handles GET /api/v1/dashboard/jobseeker.
// Returns the full application history without deduplication.
func (h *ApplicationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplicantApplications(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationListResponse(apps))
}

// JobApplications handles GET /api/v1/jobs/{id}/applications.
// Only the employer who posted the job may list its applications.
func (h *ApplicationHandler) JobApplications(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	apps, err := h.svc.ListJobApplications(r.Context(), jobID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationListResponse(apps))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ApplicationHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "APPLICATION_NOT_FOUND", "Application not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "You may not view this application")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
